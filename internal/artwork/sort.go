package artwork

import (
	"sort"
	"strings"

	"github.com/01moynul/artstudio-golang/internal/models"
)

// Order is a gallery sort order.
type Order string

const (
	Newest    Order = "newest"
	Oldest    Order = "oldest"
	PriceAsc  Order = "price_asc"
	PriceDesc Order = "price_desc"
	ByTitle   Order = "title"
)

// ParseOrder maps a query value to an Order, defaulting to Newest.
func ParseOrder(s string) Order {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case Oldest, PriceAsc, PriceDesc, ByTitle:
		return o
	default:
		return Newest
	}
}

// Sort orders records in place. Ties keep their stored order.
func Sort(records []models.ArtworkRecord, order Order) {
	var less func(a, b *models.ArtworkRecord) bool
	switch order {
	case Oldest:
		less = func(a, b *models.ArtworkRecord) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case PriceAsc:
		less = func(a, b *models.ArtworkRecord) bool { return a.Price < b.Price }
	case PriceDesc:
		less = func(a, b *models.ArtworkRecord) bool { return a.Price > b.Price }
	case ByTitle:
		less = func(a, b *models.ArtworkRecord) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	default:
		less = func(a, b *models.ArtworkRecord) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(records, func(i, j int) bool { return less(&records[i], &records[j]) })
}
