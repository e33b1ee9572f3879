package goviewset

import (
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Paginator divides a query object into fixed-size pages. GORMPaginator is
// the default implementation; substitute your own via PaginatorFactory.
type Paginator[T any] interface {
	// Count returns the total number of records in the dataset.
	Count() (int64, error)
	// NumPages returns the total number of pages.
	NumPages() (int, error)
	// Page fetches the page with the given 1-based number.
	Page(number int) (*Page[T], error)
}

// PaginatorFactory builds a Paginator for a query object. It is the
// substitution point for a custom paginator implementation.
type PaginatorFactory[T any] func(db *gorm.DB, perPage int, orphans int, allowEmptyFirstPage bool) Paginator[T]

// Page is an ordered sub-sequence of the dataset plus pagination metadata.
type Page[T any] struct {
	// ObjectList holds the records of this page.
	ObjectList []T
	// Number is the 1-based page number.
	Number int

	numPages int
	total    int64
}

// HasNext reports whether a page with a greater number exists.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Number < p.numPages
}

// HasPrevious reports whether a page with a lesser number exists.
func (p *Page[T]) HasPrevious() bool {
	return p != nil && p.Number > 1
}

// HasOtherPages reports whether the dataset extends beyond this page.
func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

// NumPages returns the total number of pages in the dataset this page was
// sliced from.
func (p *Page[T]) NumPages() int {
	if p == nil {
		return 0
	}

	return p.numPages
}

// Total returns the total number of records in the dataset this page was
// sliced from.
func (p *Page[T]) Total() int64 {
	if p == nil {
		return 0
	}

	return p.total
}

// GORMPaginator slices a gorm query into numbered pages.
//
// The record count is computed once and cached; construct a fresh paginator
// per request rather than sharing one across requests.
type GORMPaginator[T any] struct {
	db                  *gorm.DB
	perPage             int
	orphans             int
	allowEmptyFirstPage bool
	sort                Orderings

	count *int64
}

// NewGORMPaginator builds a paginator over db with the given page size.
// Orphans default to 0 and empty first pages are allowed; adjust via the
// With* methods.
func NewGORMPaginator[T any](db *gorm.DB, perPage int) *GORMPaginator[T] {
	return &GORMPaginator[T]{
		db:                  db,
		perPage:             perPage,
		allowEmptyFirstPage: true,
	}
}

// WithOrphans sets the number of trailing records the final page absorbs
// instead of spilling them onto an extra page.
func (p *GORMPaginator[T]) WithOrphans(orphans int) *GORMPaginator[T] {
	if p == nil {
		p = new(GORMPaginator[T])
	}

	p.orphans = orphans

	return p
}

// WithAllowEmptyFirstPage controls whether page 1 of an empty dataset is
// valid. When false, fetching it fails with ErrEmptyPage.
func (p *GORMPaginator[T]) WithAllowEmptyFirstPage(allow bool) *GORMPaginator[T] {
	if p == nil {
		p = new(GORMPaginator[T])
	}

	p.allowEmptyFirstPage = allow

	return p
}

// WithSort sets the orderings applied before slicing. Page-number slicing
// needs a deterministic order to be stable between requests.
func (p *GORMPaginator[T]) WithSort(orderBy ...OrderBy) *GORMPaginator[T] {
	if p == nil {
		p = new(GORMPaginator[T])
	}

	p.sort = append(p.sort, orderBy...)

	return p
}

// Count - implements Paginator. The result is cached after the first call.
func (p *GORMPaginator[T]) Count() (int64, error) {
	if p.count != nil {
		return *p.count, nil
	}

	var count int64
	err := p.db.Session(&gorm.Session{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("cannot count dataset: %w", err)
	}
	p.count = &count

	return count, nil
}

// NumPages - implements Paginator. Returns 0 for an empty dataset when empty
// first pages are disallowed.
func (p *GORMPaginator[T]) NumPages() (int, error) {
	count, err := p.Count()
	if err != nil {
		return 0, err
	}

	if count == 0 && !p.allowEmptyFirstPage {
		return 0, nil
	}

	hits := lo.Max([]int64{1, count - int64(p.orphans)})

	return int((hits + int64(p.perPage) - 1) / int64(p.perPage)), nil
}

// Page - implements Paginator. Fetches the requested page. The final page
// absorbs up to orphans trailing records.
func (p *GORMPaginator[T]) Page(number int) (*Page[T], error) {
	err := p.validate()
	if err != nil {
		return nil, fmt.Errorf("cannot fetch page: %w", err)
	}

	numPages, err := p.NumPages()
	if err != nil {
		return nil, err
	}

	err = p.validateNumber(number, numPages)
	if err != nil {
		return nil, err
	}

	count, err := p.Count()
	if err != nil {
		return nil, err
	}

	bottom := int64(number-1) * int64(p.perPage)
	top := bottom + int64(p.perPage)
	if top+int64(p.orphans) >= count {
		top = count
	}

	// A zero-width slice would generate a malformed LIMIT 0 fetch on some
	// backends. Return the empty page without touching the database.
	if top <= bottom {
		return &Page[T]{
			ObjectList: []T{},
			Number:     number,
			numPages:   numPages,
			total:      count,
		}, nil
	}

	var items []T
	err = p.sort.Apply(p.db.Session(&gorm.Session{})).
		Offset(int(bottom)).
		Limit(int(top - bottom)).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("cannot fetch page %d: %w", number, err)
	}

	return &Page[T]{
		ObjectList: items,
		Number:     number,
		numPages:   numPages,
		total:      count,
	}, nil
}

func (p *GORMPaginator[T]) validate() error {
	if p == nil || p.db == nil {
		return fmt.Errorf("paginator has no query object")
	}

	if p.perPage < 1 {
		return fmt.Errorf("per page must be at least 1, got %d", p.perPage)
	}

	if p.orphans < 0 {
		return fmt.Errorf("orphans cannot be negative, got %d", p.orphans)
	}

	return p.sort.validate()
}

func (p *GORMPaginator[T]) validateNumber(number int, numPages int) error {
	if number < 1 {
		return fmt.Errorf("%w: page number is less than 1", ErrInvalidPage)
	}

	if number > numPages {
		if number == 1 && p.allowEmptyFirstPage {
			return nil
		}

		return fmt.Errorf("%w", ErrEmptyPage)
	}

	return nil
}

var _ Paginator[struct{}] = (*GORMPaginator[struct{}])(nil)

// DefaultPaginatorFactory builds the stock GORMPaginator. It is the factory a
// PageAdapter uses unless a custom one is supplied.
func DefaultPaginatorFactory[T any](sort Orderings) PaginatorFactory[T] {
	return func(db *gorm.DB, perPage int, orphans int, allowEmptyFirstPage bool) Paginator[T] {
		return NewGORMPaginator[T](db, perPage).
			WithOrphans(orphans).
			WithAllowEmptyFirstPage(allowEmptyFirstPage).
			WithSort(sort...)
	}
}
