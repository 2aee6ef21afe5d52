package handlers

import (
	"net/http"

	"contact-dedupe/internal/api"
	"contact-dedupe/internal/service"

	"github.com/gin-gonic/gin"
)

type latestRunProvider interface {
	Latest() (service.Run, bool)
}

// ScanHandler exposes the result of the most recent scheduled scan
type ScanHandler struct {
	scans latestRunProvider
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scans latestRunProvider) *ScanHandler {
	return &ScanHandler{scans: scans}
}

// GetLatestScan returns the latest scheduled scan, or 404 before the first
// one completes
func (h *ScanHandler) GetLatestScan(c *gin.Context) {
	run, ok := h.scans.Latest()
	if !ok {
		api.SendNotFound(c, "Scan")
		return
	}
	api.SendSuccess(c, http.StatusOK, run.Document())
}
