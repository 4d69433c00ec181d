// Package customers provides the customer records bounded context module.
// Customer rows are created by lead conversion; this module serves the staff
// read endpoints.
package customers

import (
	addressrepo "solaris_crm_backend/internal/addresses/repository"
	"solaris_crm_backend/internal/customers/handler"
	"solaris_crm_backend/internal/customers/repository"
	"solaris_crm_backend/internal/customers/service"
	apphttp "solaris_crm_backend/internal/http"
	"solaris_crm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the customers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the customers module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), addressrepo.New(pool), log)
	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "customers"
}

// RegisterRoutes mounts customer routes; all of them are staff-only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/customers"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
