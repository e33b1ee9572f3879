package goviewset

// Package goviewset provides viewset glue between gin and GORM.
//
// Overview
//
// goviewset implements three small pieces:
//   - PageAdapter: slices a GORM query into numbered pages given a page token,
//     tolerating an empty result set and supporting a "last" page token.
//   - Action dispatch: turns a manager's declared action table into verb-bound
//     gin handlers that translate result envelopes into HTTP status codes.
//   - Viewset: binds a manager's action methods onto a router at setup time,
//     so the manager provides the behavior without any handler boilerplate.
//
// Key concepts
//   - Manager: declares ActionMethods, a static table of action name to
//     allowed verbs and bound implementation. Instantiated per request via a
//     ManagerFactory.
//   - Paginator: divides a query object into fixed-size pages and reports the
//     page count. Pluggable via PaginatorFactory; GORMPaginator is the default.
//   - Result: the envelope an action returns, carrying a "status" field used
//     to select the response code.
//
// See README for examples and usage details.
