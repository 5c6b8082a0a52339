package service

import (
	"featuretoggle/entity"
)

// Bounds configures the accepted page-size range for one query surface.
// The dashboard-facing paged query and the general listing path intentionally
// use different ranges, so both are carried in configuration rather than
// hardcoded here.
type Bounds struct {
	Default int
	Min     int
	Max     int
}

// FeatureQuery is the normalized specification for a filtered, paginated
// feature listing. Invalid inputs are rejected by retaining the current value:
// a page below 1 or a quantity outside the bounds leaves the previous value in
// place instead of resetting to a default.
type FeatureQuery struct {
	filter   entity.FeatureFilter
	search   string
	page     int
	quantity int
	bounds   Bounds
}

// NewFeatureQuery returns a query with page 1, the bounds' default quantity
// and no filter or search applied.
func NewFeatureQuery(bounds Bounds) *FeatureQuery {
	return &FeatureQuery{
		filter:   entity.FilterAll,
		page:     1,
		quantity: bounds.Default,
		bounds:   bounds,
	}
}

// SetFilter applies a filter by name; unknown values retain the current filter.
func (q *FeatureQuery) SetFilter(filter string) {
	switch entity.FeatureFilter(filter) {
	case entity.FilterAll, entity.FilterActive, entity.FilterInactive:
		q.filter = entity.FeatureFilter(filter)
	}
}

func (q *FeatureQuery) SetSearch(search string) {
	q.search = search
}

func (q *FeatureQuery) SetPage(page int) {
	if page < 1 {
		return
	}
	q.page = page
}

func (q *FeatureQuery) SetQuantity(quantity int) {
	if quantity < q.bounds.Min || quantity > q.bounds.Max {
		return
	}
	q.quantity = quantity
}

func (q *FeatureQuery) Filter() entity.FeatureFilter { return q.filter }
func (q *FeatureQuery) Search() string               { return q.search }
func (q *FeatureQuery) Page() int                    { return q.page }
func (q *FeatureQuery) Quantity() int                { return q.quantity }

// PageMetadata computes the pagination envelope fields for a total record
// count obtained with the same predicate as the listing itself.
func (q *FeatureQuery) PageMetadata(totalRecords int64) (totalPages int, previousPage, nextPage *int) {
	totalPages = int((totalRecords + int64(q.quantity) - 1) / int64(q.quantity))

	if q.page > 1 {
		prev := q.page - 1
		previousPage = &prev
	}
	if q.page < totalPages {
		next := q.page + 1
		nextPage = &next
	}
	return totalPages, previousPage, nextPage
}
