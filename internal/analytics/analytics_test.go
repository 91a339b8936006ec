package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"kasir/internal/analytics"
	"kasir/internal/models"
)

func saleAt(id string, ts time.Time, items ...models.SaleItem) models.Sale {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.Sale{ID: id, Items: items, Total: total, Timestamp: ts}
}

func item(name string, price float64, qty int) models.SaleItem {
	return models.SaleItem{ID: name, Name: name, Price: decimal.NewFromFloat(price), Quantity: qty}
}

func TestFilterByRange_SameDayCoversWholeDay(t *testing.T) {
	lateFirst := saleAt("1", time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local))
	earlySecond := saleAt("2", time.Date(2024, 1, 2, 0, 0, 1, 0, time.Local))
	sales := []models.Sale{lateFirst, earlySecond}

	filtered, err := analytics.FilterByRange(sales, "2024-01-01", "2024-01-01")

	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].ID)
}

func TestFilterByRange_OpenBounds(t *testing.T) {
	sales := []models.Sale{
		saleAt("1", time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)),
		saleAt("2", time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local)),
		saleAt("3", time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)),
	}

	all, err := analytics.FilterByRange(sales, "", "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	from, err := analytics.FilterByRange(sales, "2024-02-01", "")
	assert.NoError(t, err)
	assert.Len(t, from, 2)

	until, err := analytics.FilterByRange(sales, "", "2024-02-01")
	assert.NoError(t, err)
	assert.Len(t, until, 2)
}

func TestFilterByRange_InvalidBound(t *testing.T) {
	_, err := analytics.FilterByRange(nil, "01/02/2024", "")
	assert.Error(t, err)

	_, err = analytics.FilterByRange(nil, "", "not-a-date")
	assert.Error(t, err)
}

func TestProductAnalysis_Aggregates(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	sales := []models.Sale{
		saleAt("1", ts, item("A", 10, 2)),
		saleAt("2", ts, item("A", 10, 3)),
	}

	stats := analytics.ProductAnalysis(sales)

	assert.Len(t, stats, 1)
	assert.Equal(t, "A", stats[0].Name)
	assert.Equal(t, 5, stats[0].Quantity)
	assert.True(t, stats[0].Revenue.Equal(decimal.NewFromInt(50)), "revenue was %s", stats[0].Revenue)
}

func TestProductAnalysis_PriceIsLastSeen(t *testing.T) {
	// If a product's price changed between sales the reported unit price is
	// the last occurrence, not an average.
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	sales := []models.Sale{
		saleAt("1", ts, item("A", 10, 2)),
		saleAt("2", ts, item("A", 12, 3)),
	}

	stats := analytics.ProductAnalysis(sales)

	assert.Len(t, stats, 1)
	assert.True(t, stats[0].Price.Equal(decimal.NewFromInt(12)))
	assert.True(t, stats[0].Revenue.Equal(decimal.NewFromInt(56)))
}

func TestProductAnalysis_SortedByRevenueDesc(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	sales := []models.Sale{
		saleAt("1", ts, item("Cheap", 1, 1), item("Mid", 5, 2), item("Top", 100, 1)),
		saleAt("2", ts, item("AlsoCheap", 1, 1)),
	}

	stats := analytics.ProductAnalysis(sales)

	names := make([]string, 0, len(stats))
	for _, stat := range stats {
		names = append(names, stat.Name)
	}
	// Equal revenues fall back to name order so the result is stable.
	assert.Equal(t, []string{"Top", "Mid", "AlsoCheap", "Cheap"}, names)
}

func TestSalesCountForProduct_CountsSalesNotItems(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	sales := []models.Sale{
		saleAt("1", ts, item("A", 10, 2), item("A", 10, 1)), // one sale, counted once
		saleAt("2", ts, item("A", 10, 3)),
		saleAt("3", ts, item("B", 5, 1)),
	}

	assert.Equal(t, 2, analytics.SalesCountForProduct(sales, "A"))
	assert.Equal(t, 1, analytics.SalesCountForProduct(sales, "B"))
	assert.Equal(t, 0, analytics.SalesCountForProduct(sales, "C"))
}

func TestSummary(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	sales := []models.Sale{
		saleAt("1", ts, item("A", 10, 2)),
		saleAt("2", ts, item("B", 2.5, 2)),
	}

	stats := analytics.Summary(sales)

	assert.Equal(t, 2, stats.Transactions)
	assert.Equal(t, 4, stats.UnitsSold)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(25)))
	assert.True(t, stats.AverageTicket.Equal(decimal.NewFromFloat(12.5)))
}

func TestSummary_Empty(t *testing.T) {
	stats := analytics.Summary(nil)

	assert.Equal(t, 0, stats.Transactions)
	assert.Equal(t, 0, stats.UnitsSold)
	assert.True(t, stats.Revenue.IsZero())
	assert.True(t, stats.AverageTicket.IsZero())
}

func TestProductAnalysis_Deterministic(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	sales := []models.Sale{
		saleAt("1", ts, item("A", 3, 1), item("B", 3, 1), item("C", 3, 1)),
		saleAt("2", ts, item("C", 3, 1), item("A", 3, 1)),
	}

	first := analytics.ProductAnalysis(sales)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, analytics.ProductAnalysis(sales))
	}
}
