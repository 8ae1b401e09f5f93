package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/internal/tasklist"
	"github.com/fastygo/planner/pkg/httpcontext"
	analyticsUC "github.com/fastygo/planner/usecase/analytics"
)

type AnalyticsHandler struct {
	baseHandler
	uc *analyticsUC.UseCase
}

func NewAnalyticsHandler(uc *analyticsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Task analytics
// @Tags analytics
// @Router /api/v1/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	args := ctx.QueryArgs()
	query := analyticsUC.Query{
		Range:      tasklist.ParseRange(string(args.Peek("range"))),
		CategoryID: string(args.Peek("category")),
		Refresh:    parseBool(args.Peek("refresh")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.uc.Report(stdCtx, ownerID, query)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}
