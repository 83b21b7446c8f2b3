package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func paid(t time.Time, amountPaid *float64, total float64) paidOrder {
	return paidOrder{PaidAt: t, AmountPaid: amountPaid, Total: total}
}

func amount(v float64) *float64 { return &v }

func TestBucketRevenueAmountPaidFallback(t *testing.T) {
	day := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)

	// One order paid below its total, one with no recorded amount
	rows := bucketRevenue([]paidOrder{
		paid(day, amount(900), 1000),
		paid(day.Add(time.Hour), nil, 500),
	}, "2006-01-02", time.UTC)

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Label != "2024-03-02" {
		t.Errorf("label = %s, want 2024-03-02", rows[0].Label)
	}
	if rows[0].Revenue != 1400 {
		t.Errorf("revenue = %v, want 1400", rows[0].Revenue)
	}
	if rows[0].Count != 2 {
		t.Errorf("count = %d, want 2", rows[0].Count)
	}
}

func TestBucketRevenueSortsLabels(t *testing.T) {
	rows := bucketRevenue([]paidOrder{
		paid(time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC), nil, 300),
		paid(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC), nil, 100),
		paid(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC), nil, 200),
	}, "2006-01-02", time.UTC)

	want := []string{"2024-03-01", "2024-03-05", "2024-03-09"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, label := range want {
		if rows[i].Label != label {
			t.Errorf("rows[%d].Label = %s, want %s", i, rows[i].Label, label)
		}
	}
}

func TestBucketRevenueLabelsInLocation(t *testing.T) {
	// 23:30 UTC on March 1st is already March 2nd in a UTC+7 restaurant; the
	// label must follow the reporting zone, not the stored zone.
	yangon := time.FixedZone("UTC+7", 7*60*60)
	nearMidnight := time.Date(2024, time.March, 1, 23, 30, 0, 0, time.UTC)

	rows := bucketRevenue([]paidOrder{paid(nearMidnight, nil, 700)}, "2006-01-02", yangon)

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Label != "2024-03-02" {
		t.Errorf("label = %s, want 2024-03-02", rows[0].Label)
	}
}

func TestRankBestSellers(t *testing.T) {
	noodles := uuid.New()
	rice := uuid.New()
	deleted := uuid.New()
	noodlesName := "Shan Noodles"
	riceName := "Fried Rice"

	// Quantities accumulate across orders; the deleted item keeps its slot
	// with no name
	lines := []soldLine{
		{MenuItemID: noodles, Name: &noodlesName, Qty: 2},
		{MenuItemID: rice, Name: &riceName, Qty: 1},
		{MenuItemID: noodles, Name: &noodlesName, Qty: 3},
		{MenuItemID: deleted, Name: nil, Qty: 4},
		{MenuItemID: rice, Name: &riceName, Qty: 1},
	}

	sellers := rankBestSellers(lines, 10)

	if len(sellers) != 3 {
		t.Fatalf("sellers = %d, want 3", len(sellers))
	}
	if sellers[0].MenuItemID != noodles || sellers[0].QtySold != 5 {
		t.Errorf("sellers[0] = %+v, want %s qty 5", sellers[0], noodles)
	}
	if sellers[1].MenuItemID != deleted || sellers[1].QtySold != 4 {
		t.Errorf("sellers[1] = %+v, want %s qty 4", sellers[1], deleted)
	}
	if sellers[1].Name != nil {
		t.Errorf("sellers[1].Name = %v, want nil for a deleted item", *sellers[1].Name)
	}
	if sellers[2].MenuItemID != rice || sellers[2].QtySold != 2 {
		t.Errorf("sellers[2] = %+v, want %s qty 2", sellers[2], rice)
	}
}

func TestRankBestSellersLimit(t *testing.T) {
	lines := []soldLine{}
	for i := 1; i <= 5; i++ {
		lines = append(lines, soldLine{MenuItemID: uuid.New(), Qty: i})
	}

	sellers := rankBestSellers(lines, 2)

	if len(sellers) != 2 {
		t.Fatalf("sellers = %d, want 2", len(sellers))
	}
	if sellers[0].QtySold != 5 || sellers[1].QtySold != 4 {
		t.Errorf("top quantities = %d, %d, want 5, 4", sellers[0].QtySold, sellers[1].QtySold)
	}
}
