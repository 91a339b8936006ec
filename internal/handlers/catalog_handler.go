package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kasir/internal/services"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service *services.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Post("/", h.HandleSaveProduct)
	products.Delete("/:id", h.HandleRemoveProduct)
}

// HandleListProducts returns every product. The UI orders the grid itself.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return fail(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleSaveProduct creates a product or fully replaces one with the same
// ID.
func (h *CatalogHandler) HandleSaveProduct(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.Save(input)
	if err != nil {
		h.logger.Warn("failed to save product", zap.Error(err))
		return fail(c, "Could not save product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product saved",
		"product": product,
	})
}

// HandleRemoveProduct deletes a product by ID. A missing ID still reports
// success; historical sales are never touched.
func (h *CatalogHandler) HandleRemoveProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Remove(id); err != nil {
		h.logger.Error("failed to remove product", zap.String("product_id", id), zap.Error(err))
		return fail(c, "Could not remove product", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product removed",
	})
}
