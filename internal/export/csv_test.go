package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"kasir/internal/export"
	"kasir/internal/models"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

func testSales() []models.Sale {
	ts := time.Date(2024, 3, 15, 14, 30, 5, 0, time.Local)
	return []models.Sale{
		{
			ID:        "1710513005000",
			Timestamp: ts,
			Total:     decimal.NewFromFloat(12.5),
			Items: []models.SaleItem{
				{ID: "p1", Name: "Coffee", Price: decimal.NewFromFloat(3.5), Quantity: 2},
				{ID: "p2", Name: "Tea", Price: decimal.NewFromFloat(5.5), Quantity: 1},
			},
		},
	}
}

func TestSalesLog(t *testing.T) {
	data, err := export.SalesLog(testSales())
	assert.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, bom), "output must start with a UTF-8 BOM")

	lines := strings.Split(strings.TrimRight(string(data[len(bom):]), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Date,Time,Items,Total,TransactionID", lines[0])
	assert.Equal(t, "2024-03-15,14:30:05,Coffee×2; Tea×1,12.5,1710513005000", lines[1])
}

func TestSalesLog_QuotesSpecialCharacters(t *testing.T) {
	sales := testSales()
	sales[0].Items = []models.SaleItem{
		{ID: "p1", Name: `Milk, whole "1L"`, Price: decimal.NewFromInt(1), Quantity: 1},
	}

	data, err := export.SalesLog(sales)
	assert.NoError(t, err)

	// Fields containing commas or quotes are wrapped, internal quotes
	// doubled.
	assert.Contains(t, string(data), `"Milk, whole ""1L""×1"`)
}

func TestProductRanking(t *testing.T) {
	ts := time.Date(2024, 3, 15, 14, 30, 5, 0, time.Local)
	sales := []models.Sale{
		{ID: "1", Timestamp: ts, Items: []models.SaleItem{
			{Name: "Coffee", Price: decimal.NewFromInt(10), Quantity: 2},
			{Name: "Tea", Price: decimal.NewFromInt(2), Quantity: 1},
		}},
		{ID: "2", Timestamp: ts, Items: []models.SaleItem{
			{Name: "Coffee", Price: decimal.NewFromInt(10), Quantity: 3},
		}},
	}

	data, err := export.ProductRanking(sales)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, bom))

	lines := strings.Split(strings.TrimRight(string(data[len(bom):]), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Rank,Name,UnitPrice,QuantitySold,Revenue,AvgUnitsPerSale", lines[0])
	// Coffee: 5 units over 2 sales, revenue 50, avg 2.5 per transaction.
	assert.Equal(t, "1,Coffee,10,5,50,2.5", lines[1])
	// Tea: 1 unit over 1 sale.
	assert.Equal(t, "2,Tea,2,1,1,1", lines[2])
}

func TestExport_EmptyInput(t *testing.T) {
	data, err := export.SalesLog(nil)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data[len(bom):]), "\n"), "\n")
	assert.Len(t, lines, 1, "only the header row")

	data, err = export.ProductRanking(nil)
	assert.NoError(t, err)
	lines = strings.Split(strings.TrimRight(string(data[len(bom):]), "\n"), "\n")
	assert.Len(t, lines, 1)
}
