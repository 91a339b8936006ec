package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kasir/internal/models"
	"kasir/internal/services"
)

// LedgerHandler handles HTTP requests for checkout and the sales ledger.
type LedgerHandler struct {
	service *services.LedgerService
	logger  *zap.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(service *services.LedgerService, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the ledger routes with the Fiber app.
func (h *LedgerHandler) RegisterRoutes(router fiber.Router) {
	sales := router.Group("/sales")
	sales.Get("/", h.HandleListSales)
	sales.Post("/checkout", h.HandleCheckout)
}

type checkoutRequest struct {
	Items []models.SaleItem `json:"items"`
}

// HandleCheckout consumes a cart snapshot and appends one sale to the
// ledger. The cart itself stays with the caller; it is discarded there after
// a successful checkout.
func (h *LedgerHandler) HandleCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sale, err := h.service.RecordSale(req.Items)
	if err != nil {
		h.logger.Warn("checkout failed", zap.Error(err))
		return fail(c, "Checkout failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Checkout complete, total %s", sale.Total.String()),
		"sale":    sale,
	})
}

// HandleListSales returns the full ledger, most recent sale first.
func (h *LedgerHandler) HandleListSales(c *fiber.Ctx) error {
	sales, err := h.service.List()
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		return fail(c, "Could not retrieve sales", err)
	}
	return c.JSON(sales)
}
