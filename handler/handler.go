package handler

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"

	"github.com/edoabasi/libcatalog/config"
	"github.com/edoabasi/libcatalog/internal/jsonlog"
	"github.com/edoabasi/libcatalog/service"
)

// Handler defines the handler layer. It binds the catalog operations to
// HTTP routes and converts typed domain faults into wire-level fault
// responses.
type Handler struct {
	config         config.Config
	logger         *jsonlog.Logger
	service        service.Service
	limiterClients *ttlcache.Cache[string, *rate.Limiter]
}

// New creates a new instance of Handler. Per-client rate limiter state lives
// in a TTL cache whose expiry goroutine runs until Close is called.
func New(cfg config.Config, logger *jsonlog.Logger, service service.Service) *Handler {
	clients := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
	go clients.Start()
	return &Handler{
		config:         cfg,
		logger:         logger,
		service:        service,
		limiterClients: clients,
	}
}

// Close stops the limiter cache's expiry goroutine.
func (h *Handler) Close() {
	h.limiterClients.Stop()
}
