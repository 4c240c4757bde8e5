package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/Caro-cyber/sistema-iareceita/internal/core/recipe"
	"github.com/Caro-cyber/sistema-iareceita/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Recipes   int                    `json:"recipes"`
}

// Handler serves the health endpoints.
type Handler struct {
	config *config.Config
	store  *recipe.Store
}

// NewHandler creates the health handler.
func NewHandler(cfg *config.Config, store *recipe.Store) *Handler {
	return &Handler{
		config: cfg,
		store:  store,
	}
}

// HealthCheck reports process health plus basic runtime stats.
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Recipes: h.store.Len(),
	})
}

// ReadinessCheck reports whether the service can take traffic.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck reports whether the process is alive.
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
