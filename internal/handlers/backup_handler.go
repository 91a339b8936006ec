package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kasir/internal/services"
)

// BackupHandler handles snapshot export and restore.
type BackupHandler struct {
	service *services.BackupService
	logger  *zap.Logger
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(service *services.BackupService, logger *zap.Logger) *BackupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the backup routes with the Fiber app.
func (h *BackupHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/backup", h.HandleExport)
	router.Post("/restore", h.HandleImport)
}

// HandleExport serializes both collections into a downloadable JSON
// snapshot.
func (h *BackupHandler) HandleExport(c *fiber.Ctx) error {
	snapshot, err := h.service.ExportSnapshot()
	if err != nil {
		h.logger.Error("backup export failed", zap.Error(err))
		return fail(c, "Could not export backup", err)
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		h.logger.Error("backup marshal failed", zap.Error(err))
		return fail(c, "Could not export backup", err)
	}
	filename := fmt.Sprintf("pos-backup_%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// HandleImport merges an uploaded snapshot into the store. Existing records
// absent from the snapshot survive; colliding IDs are overwritten, which is
// why the UI warns the user before calling this.
func (h *BackupHandler) HandleImport(c *fiber.Ctx) error {
	result, err := h.service.ImportSnapshot(c.Body())
	if err != nil {
		h.logger.Warn("backup import failed", zap.Error(err))
		return fail(c, "Could not restore backup", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf(
			"Restore complete: merged %d products and %d sales; records with matching IDs were overwritten",
			result.Products, result.Sales),
		"result": result,
	})
}
