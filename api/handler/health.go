package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/internal/infrastructure/monitor"
	"github.com/fastygo/planner/internal/reminder"
	"github.com/fastygo/planner/pkg/httpcontext"
)

// StatusSource reports dependency health.
type StatusSource interface {
	GetStatus() monitor.Status
}

// ScanReporter exposes the outcome of the latest reminder rescan.
type ScanReporter interface {
	Last() (reminder.ScanResult, time.Time)
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
	scans   ScanReporter
}

func NewHealthHandler(mon StatusSource, scans ScanReporter, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
		scans:       scans,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"postgresql": status.PostgreSQL,
			"redis":      status.Redis,
			"ledger": map[string]interface{}{
				"online": status.Ledger,
				"size":   status.LedgerSize,
			},
		},
	}
	if h.scans != nil {
		if result, at := h.scans.Last(); !at.IsZero() {
			payload["reminder_scan"] = map[string]interface{}{
				"result": result,
				"at":     at.UTC(),
			}
		}
	}

	if status.PostgreSQL && status.Redis {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}
