package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/pkg/httpcontext"
	preferenceUC "github.com/fastygo/planner/usecase/preference"
)

type PreferenceHandler struct {
	baseHandler
	uc *preferenceUC.UseCase
}

func NewPreferenceHandler(uc *preferenceUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get preferences
// @Tags preferences
// @Router /api/v1/preferences [get]
func (h *PreferenceHandler) GetPreferences(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Get(stdCtx, ownerID)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update preferences
// @Tags preferences
// @Router /api/v1/preferences [put]
func (h *PreferenceHandler) UpdatePreferences(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	var req transport.PreferenceRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Update(stdCtx, ownerID, preferenceUC.Patch{
		FullName:         req.FullName,
		Email:            req.Email,
		RemindersEnabled: req.RemindersEnabled,
	})
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Register push device
// @Tags devices
// @Router /api/v1/devices [post]
func (h *PreferenceHandler) RegisterDevice(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	var req transport.DeviceRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RegisterDevice(stdCtx, ownerID, req.Token); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]string{"token": req.Token})
}

// @Summary Unregister push device
// @Tags devices
// @Router /api/v1/devices [delete]
func (h *PreferenceHandler) UnregisterDevice(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	var req transport.DeviceRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UnregisterDevice(stdCtx, ownerID, req.Token); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	ctx.SetStatusCode(http.StatusNoContent)
}
