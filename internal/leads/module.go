// Package leads provides the instant lead response bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"aurora_leads_backend/internal/email"
	apphttp "aurora_leads_backend/internal/http"
	"aurora_leads_backend/internal/leads/analyzer"
	"aurora_leads_backend/internal/leads/handler"
	"aurora_leads_backend/internal/leads/repository"
	"aurora_leads_backend/internal/leads/service"
	"aurora_leads_backend/internal/telegram"
	"aurora_leads_backend/platform/config"
	"aurora_leads_backend/platform/logger"
	"aurora_leads_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
// The repository is chosen by the caller so the module stays agnostic of
// whether leads land in Postgres or in process memory.
func NewModule(ctx context.Context, repo repository.LeadsRepository, val *validator.Validator, cfg *config.Config, log *logger.Logger) (*Module, error) {
	az, err := analyzer.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sender := email.NewSender(cfg)

	var notifier service.Notifier
	// A nil *telegram.Client inside a non-nil interface would dodge the
	// service's nil check, so only assign when notifications are on.
	if tg := telegram.NewClient(cfg, log); tg != nil {
		notifier = tg
	}

	svc := service.New(az, sender, repo, notifier, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead pipeline service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.POST("/submit-lead", ctx.SubmitRateLimiter.RateLimit(), m.handler.HandleSubmitLead)
	ctx.API.GET("/stats", m.handler.HandleStats)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
