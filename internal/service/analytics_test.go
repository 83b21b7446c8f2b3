package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golden-lotus/pos-service/internal/models"
)

// fakeAnalyticsStore records query parameters and returns canned aggregates
type fakeAnalyticsStore struct {
	rows     []models.RevenueRow
	total    float64
	totalErr error
	top      []models.BestSeller
	limit    int
	start    time.Time
	end      time.Time
	layout   string
}

func (s *fakeAnalyticsStore) RevenueByBucket(_ context.Context, start, end time.Time, layout string) ([]models.RevenueRow, error) {
	s.start, s.end, s.layout = start, end, layout
	return s.rows, nil
}

func (s *fakeAnalyticsStore) RevenueTotal(_ context.Context, start, end time.Time) (float64, error) {
	if s.totalErr != nil {
		return 0, s.totalErr
	}
	return s.total, nil
}

func (s *fakeAnalyticsStore) BestSellers(_ context.Context, limit int) ([]models.BestSeller, error) {
	s.limit = limit
	return s.top, nil
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, time.June, 15, 14, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		query     RevenueQuery
		wantStart time.Time
		wantEnd   time.Time
		wantUnit  bucketUnit
	}{
		{
			name:      "explicit range",
			query:     RevenueQuery{Start: "2024-03-01", End: "2024-03-10"},
			wantStart: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   endOfDay(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local)),
			wantUnit:  bucketDay,
		},
		{
			name:      "month",
			query:     RevenueQuery{Month: "2024-02"},
			wantStart: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   endOfDay(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local)),
			wantUnit:  bucketDay,
		},
		{
			name:      "year",
			query:     RevenueQuery{Year: "2023"},
			wantStart: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   endOfDay(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.Local)),
			wantUnit:  bucketMonth,
		},
		{
			name:      "default is the last 30 days",
			query:     RevenueQuery{},
			wantStart: time.Date(2024, time.May, 17, 0, 0, 0, 0, time.Local),
			wantEnd:   endOfDay(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.Local)),
			wantUnit:  bucketDay,
		},
		{
			name:      "explicit range wins over month",
			query:     RevenueQuery{Start: "2024-01-01", End: "2024-01-02", Month: "2024-05"},
			wantStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   endOfDay(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.Local)),
			wantUnit:  bucketDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, unit, err := resolveRange(tt.query, now)
			if err != nil {
				t.Fatalf("resolveRange failed: %v", err)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
			if unit != tt.wantUnit {
				t.Errorf("unit = %d, want %d", unit, tt.wantUnit)
			}
		})
	}
}

func TestResolveRangeInvalid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		query RevenueQuery
	}{
		{"bad start date", RevenueQuery{Start: "yesterday", End: "2024-01-01"}},
		{"bad end date", RevenueQuery{Start: "2024-01-01", End: "soon"}},
		{"bad month", RevenueQuery{Month: "March"}},
		{"bad year", RevenueQuery{Year: "24"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := resolveRange(tt.query, now)
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("resolveRange error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRevenueMonthBuckets(t *testing.T) {
	store := &fakeAnalyticsStore{
		rows: []models.RevenueRow{
			{Label: "2024-03-02", Revenue: 900, Count: 1},
			{Label: "2024-03-15", Revenue: 500, Count: 1},
		},
		total: 2500,
	}
	svc := NewAnalyticsService(store)

	report, err := svc.Revenue(context.Background(), RevenueQuery{Month: "2024-03"})
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}

	if len(report.Buckets) != 31 {
		t.Fatalf("buckets = %d, want 31", len(report.Buckets))
	}
	if report.Buckets[0].Label != "2024-03-01" {
		t.Errorf("first label = %s, want 2024-03-01", report.Buckets[0].Label)
	}
	if report.Buckets[30].Label != "2024-03-31" {
		t.Errorf("last label = %s, want 2024-03-31", report.Buckets[30].Label)
	}

	// Days with no paid orders are present with zeroes
	if b := report.Buckets[0]; b.Revenue != 0 || b.Count != 0 {
		t.Errorf("empty bucket = %+v, want zeroes", b)
	}
	if b := report.Buckets[1]; b.Revenue != 900 || b.Count != 1 {
		t.Errorf("bucket 2024-03-02 = %+v, want revenue 900 count 1", b)
	}

	if report.TotalRevenue != 1400 {
		t.Errorf("totalRevenue = %v, want 1400", report.TotalRevenue)
	}
	if report.TotalOrders != 2 {
		t.Errorf("totalOrders = %d, want 2", report.TotalOrders)
	}

	if store.layout != "2006-01-02" {
		t.Errorf("layout = %s, want 2006-01-02", store.layout)
	}

	if report.Compare == nil {
		t.Fatal("compare missing for month query")
	}
	if report.Compare.CurrentRevenue != 1400 || report.Compare.PreviousRevenue != 2500 {
		t.Errorf("compare = %+v, want current 1400 previous 2500", report.Compare)
	}
}

func TestRevenueYearBuckets(t *testing.T) {
	store := &fakeAnalyticsStore{
		rows: []models.RevenueRow{
			{Label: "2024-06", Revenue: 12000, Count: 40},
		},
	}
	svc := NewAnalyticsService(store)

	report, err := svc.Revenue(context.Background(), RevenueQuery{Year: "2024"})
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}

	if len(report.Buckets) != 12 {
		t.Fatalf("buckets = %d, want 12", len(report.Buckets))
	}
	if report.Buckets[0].Label != "2024-01" {
		t.Errorf("first label = %s, want 2024-01", report.Buckets[0].Label)
	}
	if report.Buckets[11].Label != "2024-12" {
		t.Errorf("last label = %s, want 2024-12", report.Buckets[11].Label)
	}
	if b := report.Buckets[5]; b.Revenue != 12000 || b.Count != 40 {
		t.Errorf("bucket 2024-06 = %+v, want revenue 12000 count 40", b)
	}
	if store.layout != "2006-01" {
		t.Errorf("layout = %s, want 2006-01", store.layout)
	}
}

func TestRevenueDefaultRange(t *testing.T) {
	store := &fakeAnalyticsStore{}
	svc := NewAnalyticsService(store)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.Local)
	}

	report, err := svc.Revenue(context.Background(), RevenueQuery{})
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}

	if len(report.Buckets) != 30 {
		t.Fatalf("buckets = %d, want 30", len(report.Buckets))
	}
	if report.Buckets[0].Label != "2024-05-17" {
		t.Errorf("first label = %s, want 2024-05-17", report.Buckets[0].Label)
	}
	if report.Buckets[29].Label != "2024-06-15" {
		t.Errorf("last label = %s, want 2024-06-15", report.Buckets[29].Label)
	}
	if report.Compare != nil {
		t.Errorf("compare = %+v, want nil for default range", report.Compare)
	}
}

func TestRevenueComparisonFailureNonFatal(t *testing.T) {
	store := &fakeAnalyticsStore{
		rows:     []models.RevenueRow{{Label: "2024-03-02", Revenue: 900, Count: 1}},
		totalErr: errors.New("connection reset"),
	}
	svc := NewAnalyticsService(store)

	report, err := svc.Revenue(context.Background(), RevenueQuery{Month: "2024-03"})
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}
	if report.Compare != nil {
		t.Errorf("compare = %+v, want nil when the previous-period query fails", report.Compare)
	}
	if report.TotalRevenue != 900 {
		t.Errorf("totalRevenue = %v, want 900", report.TotalRevenue)
	}
}

func TestRevenueInvalidQuery(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsStore{})

	_, err := svc.Revenue(context.Background(), RevenueQuery{Month: "not-a-month"})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("Revenue error = %v, want ErrValidation", err)
	}
}

func TestBestSellersLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 5, 5},
		{"zero falls back to default", 0, defaultBestSellerLimit},
		{"negative falls back to default", -3, defaultBestSellerLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeAnalyticsStore{}
			svc := NewAnalyticsService(store)

			if _, err := svc.BestSellers(context.Background(), tt.limit); err != nil {
				t.Fatalf("BestSellers failed: %v", err)
			}
			if store.limit != tt.want {
				t.Errorf("limit = %d, want %d", store.limit, tt.want)
			}
		})
	}
}
