// Package leads provides the lead lifecycle bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	addressrepo "solaris_crm_backend/internal/addresses/repository"
	addresssvc "solaris_crm_backend/internal/addresses/service"
	customerrepo "solaris_crm_backend/internal/customers/repository"
	"solaris_crm_backend/internal/events"
	apphttp "solaris_crm_backend/internal/http"
	"solaris_crm_backend/internal/leads/handler"
	"solaris_crm_backend/internal/leads/repository"
	"solaris_crm_backend/internal/leads/service"
	"solaris_crm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	addresses := addresssvc.New(addressrepo.New(pool))
	customers := customerrepo.New(pool)

	svc := service.New(repo, addresses, customers, eventBus, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lifecycle engine for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
// Intake is public (the marketing-site quote form posts here) and rate
// limited; everything else is staff-only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	intake := ctx.V1.Group("/leads")
	intake.Use(ctx.IntakeRateLimiter.RateLimit())
	m.handler.RegisterPublicRoutes(intake)

	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
