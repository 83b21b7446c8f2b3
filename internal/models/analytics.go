package models

import "github.com/google/uuid"

// RevenueRow is one aggregated row from the store, keyed by its bucket label
type RevenueRow struct {
	Label   string  `db:"label"`
	Revenue float64 `db:"revenue"`
	Count   int     `db:"count"`
}

// Bucket is one time-interval slot in a revenue series. Buckets with no paid
// orders carry zero revenue and count so charting clients never fill gaps.
type Bucket struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

// Comparison relates the selected period's revenue to the preceding one
type Comparison struct {
	CurrentRevenue  float64 `json:"currentRevenue"`
	PreviousRevenue float64 `json:"previousRevenue"`
}

// RevenueReport is the response of a revenue analytics query
type RevenueReport struct {
	TotalOrders  int         `json:"totalOrders"`
	TotalRevenue float64     `json:"totalRevenue"`
	Buckets      []Bucket    `json:"buckets"`
	Compare      *Comparison `json:"compare,omitempty"`
}

// BestSeller is one entry of the best-seller ranking. Name is nil when the
// referenced menu item no longer exists.
type BestSeller struct {
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menuId"`
	Name       *string   `db:"name" json:"name"`
	QtySold    int       `db:"qty_sold" json:"qtySold"`
}
