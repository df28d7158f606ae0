package controllers

import (
	"net/http"

	"github.com/tailscope/tailscope/internal/runtime"
	"github.com/tailscope/tailscope/internal/services/aggregate"
	logsvc "github.com/tailscope/tailscope/internal/services/logs"
	registrysvc "github.com/tailscope/tailscope/internal/services/registry"
	logpkg "github.com/tailscope/tailscope/pkg/log"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes.
type ControllerRegistry struct {
	general   *GeneralController
	logs      *LogsController
	servers   *ServersController
	aggregate *AggregateController
}

// NewControllerRegistry creates a new controller registry.
//
// It initializes all controllers with the provided runtime and services.
func NewControllerRegistry(rt *runtime.Runtime, logs *logsvc.Service, servers *registrysvc.Registry, agg *aggregate.Client, logger logpkg.Logger) *ControllerRegistry {
	return &ControllerRegistry{
		general:   NewGeneralController(rt),
		logs:      NewLogsController(rt, logs, logger),
		servers:   NewServersController(servers, agg),
		aggregate: NewAggregateController(servers, agg),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
//
// This sets up the full HTTP surface: service info and health, log tail
// and streaming endpoints, the secondary server registry, and the
// fleet-wide aggregation endpoints.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.logs.RegisterRoutes(mux)
	r.servers.RegisterRoutes(mux)
	r.aggregate.RegisterRoutes(mux)
}
