package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"tasktracker/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	StatusOk   = "ok"
	StatusDown = "down"

	healthCheckTimeout = 2 * time.Second
	healthTimeLayout   = "2006-01-02 15:04:05"
)

// Pinger is satisfied by *sqlx.DB and *blob.DiskStore. A nil Pinger is
// reported as reachable; the memory driver has nothing to ping.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Storage string `json:"storage"`
	Blobs   string `json:"blobs"`
	Driver  string `json:"driver"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Uptime            string         `json:"uptime"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	storage Pinger
	blobs   Pinger
	driver  string
	started time.Time
}

func NewHealthHandler(driver string, storage, blobs Pinger) *HealthHandler {
	return &HealthHandler{storage: storage, blobs: blobs, driver: driver, started: time.Now()}
}

// CheckHealth answers 503 when the database or the upload directory is
// unreachable.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	services := h.probe(c.Request.Context())

	statusCode := http.StatusOK
	message := StatusOk
	if services.Storage != StatusOk || services.Blobs != StatusOk {
		statusCode = http.StatusServiceUnavailable
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        appVersion(),
		CurrentSystemTime: time.Now().Format(healthTimeLayout),
		Message:           message,
	})
}

// CheckHealthReport always answers 200 and reports each dependency.
func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        appVersion(),
		CurrentSystemTime: time.Now().Format(healthTimeLayout),
		Uptime:            time.Since(h.started).Truncate(time.Second).String(),
		Language:          middleware.GetLang(c),
		Status:            h.probe(c.Request.Context()),
	})
}

func (h *HealthHandler) probe(ctx context.Context) HealthServices {
	return HealthServices{
		Storage: ping(ctx, "storage", h.storage),
		Blobs:   ping(ctx, "blobs", h.blobs),
		Driver:  h.driver,
	}
}

func ping(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return StatusOk
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := p.PingContext(ctx); err != nil {
		zap.L().Warn("health check failed", zap.String("dependency", name), zap.Error(err))
		return StatusDown
	}
	return StatusOk
}

func appVersion() string {
	if version := os.Getenv("APP_VERSION"); version != "" {
		return version
	}
	return "dev"
}
