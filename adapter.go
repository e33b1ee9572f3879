package goviewset

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LastPageToken is the page identifier meaning "the final page".
const LastPageToken = "last"

// FilterFunc narrows a query object before pagination.
type FilterFunc func(db *gorm.DB) *gorm.DB

// PageAdapter wraps a paginator factory to slice a query object into a page
// given a page token.
//
// A zero adapter paginates nothing: the page size defaults to NoPagination and
// the whole dataset is returned as a single page. Configure via the With*
// methods.
type PageAdapter[T any] struct {
	perPage    int
	orphans    int
	allowEmpty bool
	sort       Orderings
	filter     FilterFunc
	paginator  PaginatorFactory[T]
}

// NewPageAdapter builds an adapter with no pagination and empty result sets
// allowed.
func NewPageAdapter[T any]() *PageAdapter[T] {
	return &PageAdapter[T]{
		perPage:    NoPagination,
		allowEmpty: true,
	}
}

// WithPageSize sets the number of records per page. NoPagination disables
// slicing; any other value is normalized via NormalizePageSize.
func (a *PageAdapter[T]) WithPageSize(perPage int) *PageAdapter[T] {
	if a == nil {
		a = NewPageAdapter[T]()
	}

	if perPage == NoPagination {
		a.perPage = NoPagination
	} else {
		a.perPage = NormalizePageSize(perPage)
	}

	return a
}

// WithOrphans sets the number of trailing records absorbed into the final page.
func (a *PageAdapter[T]) WithOrphans(orphans int) *PageAdapter[T] {
	if a == nil {
		a = NewPageAdapter[T]()
	}

	a.orphans = orphans

	return a
}

// WithAllowEmpty controls the empty-result policy. When false and the dataset
// is empty, Page fails with ErrEmptyPage; the caller is expected to translate
// it into a not-found response.
func (a *PageAdapter[T]) WithAllowEmpty(allow bool) *PageAdapter[T] {
	if a == nil {
		a = NewPageAdapter[T]()
	}

	a.allowEmpty = allow

	return a
}

// WithSort sets the orderings applied before slicing.
func (a *PageAdapter[T]) WithSort(orderBy ...OrderBy) *PageAdapter[T] {
	if a == nil {
		a = NewPageAdapter[T]()
	}

	a.sort = append(a.sort, orderBy...)

	return a
}

// WithFilter sets a pre-pagination filter hook. The default is a passthrough;
// the hook exists so callers can narrow the query object before slicing.
func (a *PageAdapter[T]) WithFilter(filter FilterFunc) *PageAdapter[T] {
	if a == nil {
		a = NewPageAdapter[T]()
	}

	a.filter = filter

	return a
}

// WithPaginatorFactory substitutes a custom paginator implementation.
func (a *PageAdapter[T]) WithPaginatorFactory(factory PaginatorFactory[T]) *PageAdapter[T] {
	if a == nil {
		a = NewPageAdapter[T]()
	}

	a.paginator = factory

	return a
}

// PageSize returns the configured page size. NoPagination means the whole
// dataset is returned as a single page.
func (a *PageAdapter[T]) PageSize() int {
	if a == nil {
		return NoPagination
	}

	return a.perPage
}

// AllowEmpty reports the empty-result policy.
func (a *PageAdapter[T]) AllowEmpty() bool {
	return a != nil && a.allowEmpty
}

// Page slices db into the page identified by token. An empty token means the
// first page; LastPageToken means the final page; anything else must be a
// positive integer, otherwise Page fails with ErrInvalidPage.
//
// An empty dataset short-circuits into an empty single page (number 1, no
// further pages) without invoking the paginator's page fetch. Certain backends
// generate a malformed zero-row fetch for the count-zero case otherwise.
func (a *PageAdapter[T]) Page(db *gorm.DB, token string) (*Page[T], error) {
	if a == nil {
		a = NewPageAdapter[T]()
	}

	if err := a.sort.validate(); err != nil {
		return nil, fmt.Errorf("cannot apply sort: %w", err)
	}

	query := a.filterQueryObject(db)

	if a.perPage == NoPagination {
		return a.singlePage(query)
	}

	paginator := a.getPaginator(query)

	pageNumber, err := resolvePageToken(token, paginator)
	if err != nil {
		return nil, err
	}

	count, err := paginator.Count()
	if err != nil {
		return nil, err
	}

	if count == 0 {
		if !a.allowEmpty {
			return nil, fmt.Errorf("%w", ErrEmptyPage)
		}

		return &Page[T]{ObjectList: []T{}, Number: 1, numPages: 1, total: 0}, nil
	}

	return paginator.Page(pageNumber)
}

// PageFromRequest resolves the page identifier from the request and slices db
// accordingly. The identifier is read from the "page" path parameter, then
// the "page" query-string parameter, defaulting to the first page.
func (a *PageAdapter[T]) PageFromRequest(c *gin.Context, db *gorm.DB) (*Page[T], error) {
	token := c.Param("page")
	if token == "" {
		token = c.Query("page")
	}

	return a.Page(db, token)
}

// filterQueryObject applies the pre-pagination filter hook. Generic filtering
// is a passthrough unless a hook is configured.
func (a *PageAdapter[T]) filterQueryObject(db *gorm.DB) *gorm.DB {
	if a.filter == nil {
		return db
	}

	return a.filter(db)
}

func (a *PageAdapter[T]) getPaginator(db *gorm.DB) Paginator[T] {
	factory := a.paginator
	if factory == nil {
		factory = DefaultPaginatorFactory[T](a.sort)
	}

	return factory(db, a.perPage, a.orphans, a.allowEmpty)
}

// singlePage returns the whole dataset as page 1.
func (a *PageAdapter[T]) singlePage(db *gorm.DB) (*Page[T], error) {
	var items []T
	err := a.sort.Apply(db.Session(&gorm.Session{})).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("cannot fetch dataset: %w", err)
	}

	if len(items) == 0 {
		if !a.allowEmpty {
			return nil, fmt.Errorf("%w", ErrEmptyPage)
		}
		items = []T{}
	}

	return &Page[T]{ObjectList: items, Number: 1, numPages: 1, total: int64(len(items))}, nil
}

func resolvePageToken[T any](token string, paginator Paginator[T]) (int, error) {
	if token == "" {
		return 1, nil
	}

	if token == LastPageToken {
		return paginator.NumPages()
	}

	pageNumber, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: page is not '%s', nor can it be converted to an int", ErrInvalidPage, LastPageToken)
	}

	return pageNumber, nil
}
