package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kasir/internal/analytics"
	"kasir/internal/export"
	"kasir/internal/models"
	"kasir/internal/services"
)

// ReportsHandler serves the analytics queries and the CSV report downloads.
// Every endpoint takes an optional inclusive date range (start, end as
// YYYY-MM-DD query parameters).
type ReportsHandler struct {
	ledger *services.LedgerService
	logger *zap.Logger
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(ledger *services.LedgerService, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{
		ledger: ledger,
		logger: logger,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportsHandler) RegisterRoutes(router fiber.Router) {
	analyticsRoutes := router.Group("/analytics")
	analyticsRoutes.Get("/products", h.HandleProductAnalysis)
	analyticsRoutes.Get("/summary", h.HandleSummary)
	analyticsRoutes.Get("/sales-count", h.HandleSalesCount)

	exportRoutes := router.Group("/exports")
	exportRoutes.Get("/sales.csv", h.HandleExportSalesLog)
	exportRoutes.Get("/products.csv", h.HandleExportProductRanking)
}

// filteredSales loads the ledger and applies the request's date range.
func (h *ReportsHandler) filteredSales(c *fiber.Ctx) ([]models.Sale, error) {
	sales, err := h.ledger.List()
	if err != nil {
		return nil, err
	}
	filtered, err := analytics.FilterByRange(sales, c.Query("start"), c.Query("end"))
	if err != nil {
		return nil, &services.ValidationError{Field: "date range", Reason: err.Error()}
	}
	return filtered, nil
}

// HandleProductAnalysis returns the per-product aggregates, highest revenue
// first.
func (h *ReportsHandler) HandleProductAnalysis(c *fiber.Ctx) error {
	sales, err := h.filteredSales(c)
	if err != nil {
		h.logger.Error("product analysis failed", zap.Error(err))
		return fail(c, "Could not compute product analysis", err)
	}
	return c.JSON(analytics.ProductAnalysis(sales))
}

// HandleSummary returns the totals overview for the filtered range.
func (h *ReportsHandler) HandleSummary(c *fiber.Ctx) error {
	sales, err := h.filteredSales(c)
	if err != nil {
		h.logger.Error("summary failed", zap.Error(err))
		return fail(c, "Could not compute summary", err)
	}
	return c.JSON(analytics.Summary(sales))
}

// HandleSalesCount returns how many sales contain the named product at least
// once.
func (h *ReportsHandler) HandleSalesCount(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		err := &services.ValidationError{Field: "name", Reason: "query parameter is required"}
		return fail(c, "Could not count sales", err)
	}
	sales, err := h.filteredSales(c)
	if err != nil {
		h.logger.Error("sales count failed", zap.Error(err))
		return fail(c, "Could not count sales", err)
	}
	return c.JSON(fiber.Map{
		"name":  name,
		"count": analytics.SalesCountForProduct(sales, name),
	})
}

// HandleExportSalesLog streams the sales log report as a CSV attachment.
func (h *ReportsHandler) HandleExportSalesLog(c *fiber.Ctx) error {
	sales, err := h.filteredSales(c)
	if err != nil {
		return fail(c, "Could not export sales log", err)
	}
	if len(sales) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No sales data to export",
		})
	}
	data, err := export.SalesLog(sales)
	if err != nil {
		h.logger.Error("sales log export failed", zap.Error(err))
		return fail(c, "Could not export sales log", err)
	}
	return sendCSV(c, "sales-log", data)
}

// HandleExportProductRanking streams the product ranking report as a CSV
// attachment.
func (h *ReportsHandler) HandleExportProductRanking(c *fiber.Ctx) error {
	sales, err := h.filteredSales(c)
	if err != nil {
		return fail(c, "Could not export product ranking", err)
	}
	if len(sales) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No product sales data to export",
		})
	}
	data, err := export.ProductRanking(sales)
	if err != nil {
		h.logger.Error("product ranking export failed", zap.Error(err))
		return fail(c, "Could not export product ranking", err)
	}
	return sendCSV(c, "product-ranking", data)
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
