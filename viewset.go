package goviewset

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ScopeFunc supplies the query object for a viewset's list route.
type ScopeFunc func(c *gin.Context) *gorm.DB

// Viewset binds a manager's declared action methods onto a router. It holds
// its collaborators as injected dependencies: a manager factory for the
// action routes and, optionally, a page adapter plus query-object scope for
// the list route.
type Viewset[T any] struct {
	proto       Manager
	factory     ManagerFactory
	adapter     *PageAdapter[T]
	scope       ScopeFunc
	sortMapping ColumnMapping
}

// NewViewset builds a viewset for the given manager. proto is the declaration
// source: its action table is read once at registration time. factory
// instantiates a fresh manager per request.
func NewViewset[T any](proto Manager, factory ManagerFactory) *Viewset[T] {
	return &Viewset[T]{
		proto:   proto,
		factory: factory,
	}
}

// WithPageAdapter sets the adapter used by the list route.
func (v *Viewset[T]) WithPageAdapter(adapter *PageAdapter[T]) *Viewset[T] {
	if v == nil {
		v = new(Viewset[T])
	}

	v.adapter = adapter

	return v
}

// WithScope enables the list route: scope supplies the query object to
// paginate for each request.
func (v *Viewset[T]) WithScope(scope ScopeFunc) *Viewset[T] {
	if v == nil {
		v = new(Viewset[T])
	}

	v.scope = scope

	return v
}

// WithColumnMapping allows clients to sort the list route via "sort" query
// parameters, resolved through the given alias mapping.
func (v *Viewset[T]) WithColumnMapping(mapping ColumnMapping) *Viewset[T] {
	if v == nil {
		v = new(Viewset[T])
	}

	v.sortMapping = mapping

	return v
}

// Register performs the one-time composition step: for each action method the
// manager declares, a generated handler is mounted under the lower-cased
// action name, both bare and behind a ":pk" path identifier, for each allowed
// verb. A manager declaring no action methods registers nothing.
//
// Handlers themselves instantiate the manager per request; Register only
// propagates the declared metadata into routes.
func (v *Viewset[T]) Register(r gin.IRouter) {
	if v.scope != nil {
		r.Handle(http.MethodGet, "", v.listHandler)
		r.Handle(http.MethodGet, "/page/:page", v.listHandler)
	}

	if v.proto == nil {
		return
	}

	for name, action := range v.proto.ActionMethods() {
		handler := v.makeActionHandler(name)
		path := "/" + strings.ToLower(name)

		for _, method := range action.Methods {
			r.Handle(strings.ToUpper(method), path, handler)
			r.Handle(strings.ToUpper(method), "/:pk"+path, handler)
		}
	}
}

// listHandler paginates the scoped query object into a PagedResponse.
// Invalid and empty pages translate to a not-found response, everything else
// propagates as a server error.
func (v *Viewset[T]) listHandler(c *gin.Context) {
	adapter := v.adapter
	if adapter == nil {
		adapter = NewPageAdapter[T]()
	}

	if len(v.sortMapping) > 0 {
		if sortParams := c.QueryArray("sort"); len(sortParams) > 0 {
			orderings, err := ParseSort(sortParams, v.sortMapping)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			// Shallow per-request copy: the configured adapter is shared
			// across requests and must not be mutated.
			requestAdapter := *adapter
			requestAdapter.sort = orderings
			adapter = &requestAdapter
		}
	}

	page, err := adapter.PageFromRequest(c, v.scope(c))
	if err != nil {
		if errors.Is(err, ErrInvalidPage) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, NewPagedResponse(page, adapter.PageSize()))
}
