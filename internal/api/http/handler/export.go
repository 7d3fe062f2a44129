package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

// ExportService stores CSV snapshots of entity lists.
type ExportService interface {
	Entities() []string
	Export(ctx context.Context, entity string) (string, error)
	List(ctx context.Context, entity string) ([]model.StoredObject, error)
	Open(ctx context.Context, entity, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, entity, name string) error
}

// Export handles /exports endpoints.
type Export struct {
	exportService ExportService
	logger        *logger.Logger
}

func NewExport(exportService ExportService, logger *logger.Logger) *Export {
	return &Export{exportService: exportService, logger: logger}
}

// Entities lists what can be exported.
func (h *Export) Entities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entities": h.exportService.Entities()})
}

func (h *Export) Create(c *gin.Context) {
	key, err := h.exportService.Export(c.Request.Context(), c.Param("entity"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *Export) List(c *gin.Context) {
	objects, err := h.exportService.List(c.Request.Context(), c.Param("entity"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exports": objects})
}

// Download streams a stored CSV file.
func (h *Export) Download(c *gin.Context) {
	name := c.Param("name")
	rc, err := h.exportService.Open(c.Request.Context(), c.Param("entity"), name)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.logger.Error("Export handler: failed to stream export",
			"name", name,
			"error", err.Error())
	}
}

func (h *Export) Delete(c *gin.Context) {
	if err := h.exportService.Remove(c.Request.Context(), c.Param("entity"), c.Param("name")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Export deleted"})
}
