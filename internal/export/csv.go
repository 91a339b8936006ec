// Package export renders sale data as CSV reports: UTF-8 with a byte order
// mark, header row first, fields quoted only when they contain a comma,
// quote or newline, with internal quotes doubled.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"kasir/internal/analytics"
	"kasir/internal/models"
)

const itemSeparator = "; "

// SalesLog renders one row per sale: date, time, an item summary of
// name×qty pairs, the total and the transaction ID.
func SalesLog(sales []models.Sale) ([]byte, error) {
	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		parts := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			parts = append(parts, fmt.Sprintf("%s×%d", item.Name, item.Quantity))
		}
		rows = append(rows, []string{
			sale.Timestamp.Format("2006-01-02"),
			sale.Timestamp.Format("15:04:05"),
			strings.Join(parts, itemSeparator),
			sale.Total.String(),
			sale.ID,
		})
	}
	return write([]string{"Date", "Time", "Items", "Total", "TransactionID"}, rows)
}

// ProductRanking renders the per-product ranking derived from the given
// sales: rank, name, unit price, quantity sold, revenue, and average units
// per transaction (rounded to two decimals, zero when the product appears in
// no sale).
func ProductRanking(sales []models.Sale) ([]byte, error) {
	stats := analytics.ProductAnalysis(sales)
	rows := make([][]string, 0, len(stats))
	for i, stat := range stats {
		avg := "0"
		if count := analytics.SalesCountForProduct(sales, stat.Name); count > 0 {
			avg = decimal.NewFromInt(int64(stat.Quantity)).
				Div(decimal.NewFromInt(int64(count))).
				Round(2).
				String()
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			stat.Name,
			stat.Price.String(),
			strconv.Itoa(stat.Quantity),
			stat.Revenue.String(),
			avg,
		})
	}
	return write([]string{"Rank", "Name", "UnitPrice", "QuantitySold", "Revenue", "AvgUnitsPerSale"}, rows)
}

// write renders the report with a UTF-8 byte order mark so spreadsheet
// applications pick up the encoding.
func write(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
