// Package handler exposes the leads module over HTTP.
package handler

import (
	"net/http"

	"aurora_leads_backend/internal/leads/service"
	"aurora_leads_backend/internal/leads/transport"
	"aurora_leads_backend/platform/httpkit"
	"aurora_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request body"

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// HandleSubmitLead runs the full response pipeline for one submission.
// Validation failures return 422 before any downstream call is made.
func (h *Handler) HandleSubmitLead(c *gin.Context) {
	var req transport.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, validator.Describe(err))
		return
	}

	resp, err := h.svc.Process(c.Request.Context(), req.ToDomain())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

// HandleStats serves the read-only dashboard aggregate.
func (h *Handler) HandleStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, stats)
}
