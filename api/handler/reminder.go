package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/internal/reminder"
	"github.com/fastygo/planner/pkg/httpcontext"
)

// ScanRunner runs the reminder safety net on demand.
type ScanRunner interface {
	RunContext(ctx context.Context) reminder.ScanResult
}

type ReminderHandler struct {
	baseHandler
	trigger ScanRunner
}

func NewReminderHandler(trigger ScanRunner, adapter *httpcontext.Adapter, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		trigger:     trigger,
	}
}

// @Summary Rescan reminders
// @Tags reminders
// @Router /api/v1/reminders/scan [post]
func (h *ReminderHandler) Scan(ctx *fasthttp.RequestCtx) {
	if h.ownerID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result := h.trigger.RunContext(stdCtx)
	status := http.StatusOK
	if result == reminder.ResultFailed {
		status = http.StatusServiceUnavailable
	}
	h.respondSuccess(ctx, status, map[string]interface{}{"result": result})
}
