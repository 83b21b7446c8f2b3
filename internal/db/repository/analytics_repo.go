package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// AnalyticsRepository aggregates paid orders for reporting. Read-only. The
// queries fetch raw paid rows; the revenue rule and the ranking live in Go so
// labels come out of the same clock the report series is generated in.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// paidOrder is one paid order's payment columns
type paidOrder struct {
	PaidAt     time.Time `db:"paid_at"`
	AmountPaid *float64  `db:"amount_paid"`
	Total      float64   `db:"total"`
}

// soldLine is one order line of a paid order, with its menu name when the
// item still exists
type soldLine struct {
	MenuItemID uuid.UUID `db:"menu_item_id"`
	Name       *string   `db:"name"`
	Qty        int       `db:"qty"`
}

// RevenueByBucket sums revenue and order counts per bucket label over paid
// orders whose paid_at falls in [start, end]. The layout argument is a Go
// time layout such as 2006-01-02.
func (r *AnalyticsRepository) RevenueByBucket(ctx context.Context, start, end time.Time, layout string) ([]models.RevenueRow, error) {
	orders, err := r.paidOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return bucketRevenue(orders, layout, time.Local), nil
}

// RevenueTotal sums revenue over paid orders in [start, end]
func (r *AnalyticsRepository) RevenueTotal(ctx context.Context, start, end time.Time) (float64, error) {
	orders, err := r.paidOrders(ctx, start, end)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, o := range orders {
		total += orderRevenue(o)
	}
	return total, nil
}

func (r *AnalyticsRepository) paidOrders(ctx context.Context, start, end time.Time) ([]paidOrder, error) {
	query := `
		SELECT paid_at, amount_paid, total
		FROM orders
		WHERE status = $1 AND paid_at BETWEEN $2 AND $3
	`

	orders := []paidOrder{}
	err := r.db.SelectContext(ctx, &orders, query, models.OrderStatusPaid, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch paid orders: %w", err)
	}

	return orders, nil
}

// BestSellers sums sold quantities per menu item across all paid orders. The
// left join tolerates menu items that have since been deleted.
func (r *AnalyticsRepository) BestSellers(ctx context.Context, limit int) ([]models.BestSeller, error) {
	query := `
		SELECT oi.menu_item_id, mi.name, oi.qty
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status = $1
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
	`

	lines := []soldLine{}
	err := r.db.SelectContext(ctx, &lines, query, models.OrderStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sold lines: %w", err)
	}

	return rankBestSellers(lines, limit), nil
}

// orderRevenue is an order's contribution to revenue: its amount_paid when
// recorded, otherwise its total
func orderRevenue(o paidOrder) float64 {
	if o.AmountPaid != nil {
		return *o.AmountPaid
	}
	return o.Total
}

// bucketRevenue groups paid orders into labelled buckets, ascending. Labels
// render paid_at in loc.
func bucketRevenue(orders []paidOrder, layout string, loc *time.Location) []models.RevenueRow {
	byLabel := make(map[string]*models.RevenueRow)
	for _, o := range orders {
		label := o.PaidAt.In(loc).Format(layout)
		row, ok := byLabel[label]
		if !ok {
			row = &models.RevenueRow{Label: label}
			byLabel[label] = row
		}
		row.Revenue += orderRevenue(o)
		row.Count++
	}

	rows := make([]models.RevenueRow, 0, len(byLabel))
	for _, row := range byLabel {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })

	return rows
}

// rankBestSellers sums quantities per menu item and returns the top limit
// entries, most sold first. Ties break on the item ID to keep the order
// stable.
func rankBestSellers(lines []soldLine, limit int) []models.BestSeller {
	byItem := make(map[uuid.UUID]*models.BestSeller)
	for _, line := range lines {
		entry, ok := byItem[line.MenuItemID]
		if !ok {
			entry = &models.BestSeller{MenuItemID: line.MenuItemID, Name: line.Name}
			byItem[line.MenuItemID] = entry
		}
		entry.QtySold += line.Qty
	}

	sellers := make([]models.BestSeller, 0, len(byItem))
	for _, entry := range byItem {
		sellers = append(sellers, *entry)
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].QtySold != sellers[j].QtySold {
			return sellers[i].QtySold > sellers[j].QtySold
		}
		return sellers[i].MenuItemID.String() < sellers[j].MenuItemID.String()
	})

	if limit > 0 && len(sellers) > limit {
		sellers = sellers[:limit]
	}
	return sellers
}
