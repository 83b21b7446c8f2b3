package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golden-lotus/pos-service/internal/models"
)

// AnalyticsStore is the read-only aggregation access the analytics engine
// consumes. The layout argument of RevenueByBucket is a Go time layout the
// store labels its rows with.
type AnalyticsStore interface {
	RevenueByBucket(ctx context.Context, start, end time.Time, layout string) ([]models.RevenueRow, error)
	RevenueTotal(ctx context.Context, start, end time.Time) (float64, error)
	BestSellers(ctx context.Context, limit int) ([]models.BestSeller, error)
}

// RevenueQuery selects the reporting period, raw from the request. Exactly
// one shape applies, checked in order: explicit start+end, month, year, or
// the default of the last 30 days.
type RevenueQuery struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD
	Month string // YYYY-MM
	Year  string // YYYY
}

type bucketUnit int

const (
	bucketDay bucketUnit = iota
	bucketMonth
	bucketYear
)

const defaultBestSellerLimit = 10

// AnalyticsService computes time-bucketed revenue series and best-seller
// rankings from paid orders
type AnalyticsService struct {
	store AnalyticsStore
	now   func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store, now: time.Now}
}

// Revenue aggregates paid orders in the queried period into a contiguous,
// chronological bucket series. Every calendar slot in range appears exactly
// once; slots with no paid orders carry zero revenue and count.
func (s *AnalyticsService) Revenue(ctx context.Context, q RevenueQuery) (*models.RevenueReport, error) {
	start, end, unit, err := resolveRange(q, s.now())
	if err != nil {
		return nil, err
	}

	rows, err := s.store.RevenueByBucket(ctx, start, end, bucketLayout(unit))
	if err != nil {
		return nil, err
	}

	buckets := fillBuckets(rows, start, end, unit)

	report := &models.RevenueReport{Buckets: buckets}
	for _, b := range buckets {
		report.TotalOrders += b.Count
		report.TotalRevenue += b.Revenue
	}

	compare, err := s.compare(ctx, q, report.TotalRevenue)
	if err != nil {
		log.Printf("Failed to compute revenue comparison: %v", err)
	} else {
		report.Compare = compare
	}

	return report, nil
}

// compare relates the selected month or year to the preceding one. Nil for
// other query shapes.
func (s *AnalyticsService) compare(ctx context.Context, q RevenueQuery, current float64) (*models.Comparison, error) {
	var prevStart, prevEnd time.Time

	switch {
	case q.Month != "":
		first, err := time.ParseInLocation("2006-01", q.Month, time.Local)
		if err != nil {
			return nil, err
		}
		prevStart = first.AddDate(0, -1, 0)
		prevEnd = endOfDay(first.AddDate(0, 0, -1))
	case q.Year != "":
		year, err := strconv.Atoi(q.Year)
		if err != nil {
			return nil, err
		}
		prevStart = time.Date(year-1, time.January, 1, 0, 0, 0, 0, time.Local)
		prevEnd = endOfDay(time.Date(year-1, time.December, 31, 0, 0, 0, 0, time.Local))
	default:
		return nil, nil
	}

	previous, err := s.store.RevenueTotal(ctx, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	return &models.Comparison{CurrentRevenue: current, PreviousRevenue: previous}, nil
}

// BestSellers ranks menu items by quantity sold across all paid orders,
// descending, top limit entries. Deleted menu items keep their slot with an
// absent name.
func (s *AnalyticsService) BestSellers(ctx context.Context, limit int) ([]models.BestSeller, error) {
	if limit <= 0 {
		limit = defaultBestSellerLimit
	}
	return s.store.BestSellers(ctx, limit)
}

// resolveRange turns a query into a [start, end] period and bucket
// granularity, deterministically
func resolveRange(q RevenueQuery, now time.Time) (time.Time, time.Time, bucketUnit, error) {
	var zero time.Time

	switch {
	case q.Start != "" && q.End != "":
		start, err := time.ParseInLocation("2006-01-02", q.Start, time.Local)
		if err != nil {
			return zero, zero, 0, fmt.Errorf("invalid start date %q: %w", q.Start, models.ErrValidation)
		}
		end, err := time.ParseInLocation("2006-01-02", q.End, time.Local)
		if err != nil {
			return zero, zero, 0, fmt.Errorf("invalid end date %q: %w", q.End, models.ErrValidation)
		}
		return start, endOfDay(end), bucketDay, nil

	case q.Month != "":
		first, err := time.ParseInLocation("2006-01", q.Month, time.Local)
		if err != nil {
			return zero, zero, 0, fmt.Errorf("invalid month %q: %w", q.Month, models.ErrValidation)
		}
		last := first.AddDate(0, 1, -1)
		return first, endOfDay(last), bucketDay, nil

	case q.Year != "":
		year, err := strconv.Atoi(q.Year)
		if err != nil {
			return zero, zero, 0, fmt.Errorf("invalid year %q: %w", q.Year, models.ErrValidation)
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		end := endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local))
		return start, end, bucketMonth, nil

	default:
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return today.AddDate(0, 0, -29), endOfDay(today), bucketDay, nil
	}
}

// fillBuckets expands the store's sparse rows into the contiguous series
// spanning start..end at the chosen granularity
func fillBuckets(rows []models.RevenueRow, start, end time.Time, unit bucketUnit) []models.Bucket {
	byLabel := make(map[string]models.RevenueRow, len(rows))
	for _, row := range rows {
		byLabel[row.Label] = row
	}

	buckets := []models.Bucket{}
	for cursor := start; !cursor.After(end); {
		var label string
		switch unit {
		case bucketDay:
			label = cursor.Format("2006-01-02")
			cursor = cursor.AddDate(0, 0, 1)
		case bucketMonth:
			label = cursor.Format("2006-01")
			cursor = cursor.AddDate(0, 1, 0)
		default:
			label = cursor.Format("2006")
			cursor = cursor.AddDate(1, 0, 0)
		}

		bucket := models.Bucket{Label: label}
		if row, ok := byLabel[label]; ok {
			bucket.Revenue = row.Revenue
			bucket.Count = row.Count
		}
		buckets = append(buckets, bucket)
	}

	return buckets
}

// bucketLayout is the label layout of a bucket unit, shared with the store so
// its labels line up with the generated series
func bucketLayout(unit bucketUnit) string {
	switch unit {
	case bucketDay:
		return "2006-01-02"
	case bucketMonth:
		return "2006-01"
	default:
		return "2006"
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
