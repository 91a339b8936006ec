// Package analytics derives reports from a supplied sale list. Everything
// here is a pure function: same input, same output, no hidden state.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"kasir/internal/models"
)

const dayLayout = "2006-01-02"

// ProductStat aggregates one product name across a set of sales.
type ProductStat struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Price    decimal.Decimal `json:"price"`
}

// SummaryStats is the totals overview for a set of sales.
type SummaryStats struct {
	Transactions  int             `json:"transactions"`
	Revenue       decimal.Decimal `json:"revenue"`
	UnitsSold     int             `json:"units_sold"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// FilterByRange keeps the sales whose timestamp falls inside the inclusive
// calendar-day range. start bounds from the beginning of its day and end
// covers through 23:59:59 of its day, so start == end selects that whole
// day. An empty bound leaves that side open. Bounds are "YYYY-MM-DD" in
// local time.
func FilterByRange(sales []models.Sale, start, end string) ([]models.Sale, error) {
	var lower, upper time.Time
	if start != "" {
		day, err := time.ParseInLocation(dayLayout, start, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		lower = day
	}
	if end != "" {
		day, err := time.ParseInLocation(dayLayout, end, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		upper = day.Add(24*time.Hour - time.Second)
	}

	filtered := make([]models.Sale, 0, len(sales))
	for _, sale := range sales {
		if start != "" && sale.Timestamp.Before(lower) {
			continue
		}
		if end != "" && sale.Timestamp.After(upper) {
			continue
		}
		filtered = append(filtered, sale)
	}
	return filtered, nil
}

// ProductAnalysis aggregates every line item across the given sales by
// product name. Price carries the most recently seen unit price for that
// name: if a product's price changed between sales, the reported unit price
// is whichever occurrence came last in the input. Known quirk, kept for
// parity with the report this feeds.
//
// The result is sorted by revenue descending, equal revenues by name
// ascending, so the output is exactly reproducible.
func ProductAnalysis(sales []models.Sale) []ProductStat {
	byName := make(map[string]*ProductStat)
	order := make([]string, 0)

	for _, sale := range sales {
		for _, item := range sale.Items {
			stat, ok := byName[item.Name]
			if !ok {
				stat = &ProductStat{Name: item.Name}
				byName[item.Name] = stat
				order = append(order, item.Name)
			}
			stat.Quantity += item.Quantity
			stat.Revenue = stat.Revenue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			stat.Price = item.Price
		}
	}

	out := make([]ProductStat, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SalesCountForProduct counts the sales (not line items) containing the
// product name at least once.
func SalesCountForProduct(sales []models.Sale, name string) int {
	count := 0
	for _, sale := range sales {
		for _, item := range sale.Items {
			if item.Name == name {
				count++
				break
			}
		}
	}
	return count
}

// Summary computes the totals overview: transaction count, total revenue,
// total units sold, and the average ticket rounded to cents.
func Summary(sales []models.Sale) SummaryStats {
	stats := SummaryStats{Transactions: len(sales)}
	for _, sale := range sales {
		stats.Revenue = stats.Revenue.Add(sale.Total)
		for _, item := range sale.Items {
			stats.UnitsSold += item.Quantity
		}
	}
	if stats.Transactions > 0 {
		stats.AverageTicket = stats.Revenue.
			Div(decimal.NewFromInt(int64(stats.Transactions))).
			Round(2)
	}
	return stats
}
