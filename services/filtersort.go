package services

import (
	"sort"
	"strings"

	"github.com/taller3d/printshop-api/models"
)

// SortKey selects the field a view is ordered by
type SortKey string

const (
	// SortByDeliveryDate orders by delivery date; undated orders go last
	SortByDeliveryDate SortKey = "deliveryDate"
	// SortByTotalPrice orders by the order's total price
	SortByTotalPrice SortKey = "totalPrice"
)

// SortDir is the direction of a sort
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// StatusFilterAll matches every status
const StatusFilterAll = "all"

// Query is the view state of the dashboard: which statuses to show,
// a free-text search, and the active sort. Applying a Query is pure
// derivation from the snapshot and is safe to recompute on every change.
type Query struct {
	Status string
	Search string
	Sort   SortKey
	Dir    SortDir
}

// ApplyQuery narrows and orders a snapshot for display. The input slice
// is never modified. Orders comparing equal on the sort key keep their
// relative order from the snapshot, which is itself date-ascending.
func ApplyQuery(orders []models.Order, q Query) []models.Order {
	result := make([]models.Order, 0, len(orders))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, o := range orders {
		if !matchesStatus(o, q.Status) {
			continue
		}
		if !matchesSearch(o, search) {
			continue
		}
		result = append(result, o)
	}

	sortOrders(result, q.Sort, q.Dir)
	return result
}

func matchesStatus(o models.Order, filter string) bool {
	if filter == "" || filter == StatusFilterAll {
		return true
	}
	return string(o.Status) == filter
}

func matchesSearch(o models.Order, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Name), search) ||
		strings.Contains(strings.ToLower(o.Client), search)
}

func sortOrders(orders []models.Order, key SortKey, dir SortDir) {
	var less func(a, b models.Order) bool

	switch key {
	case SortByDeliveryDate:
		less = func(a, b models.Order) bool {
			return dateSortValue(a) < dateSortValue(b)
		}
	case SortByTotalPrice:
		less = func(a, b models.Order) bool {
			return a.TotalPrice < b.TotalPrice
		}
	default:
		// no sort key: keep the snapshot's own ordering
		return
	}

	if dir == SortDesc {
		asc := less
		less = func(a, b models.Order) bool { return asc(b, a) }
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return less(orders[i], orders[j])
	})
}

// dateSortValue places undated orders after every dated one
func dateSortValue(o models.Order) int64 {
	if o.DeliveryDate == nil {
		return int64(1) << 62
	}
	return o.DeliveryDate.Unix()
}
