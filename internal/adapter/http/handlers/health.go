package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devflow/internal/adapter/http/middleware"
	"devflow/internal/core/ports"
)

const (
	StatusOk       = "ok"
	StatusDown     = "down"
	StatusDisabled = "disabled"
	healthTimeout  = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Database string `json:"database"`
	Sessions string `json:"sessions"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	appName    string
	appVersion string
	database   ports.Pinger
	sessions   ports.Pinger
}

// NewHealthHandler reports on database and, when not nil, on the session
// revocation store.
func NewHealthHandler(appName, appVersion string, database, sessions ports.Pinger) *HealthHandler {
	if appVersion == "" {
		appVersion = "dev"
	}
	return &HealthHandler{
		appName:    appName,
		appVersion: appVersion,
		database:   database,
		sessions:   sessions,
	}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk

	if h.check(c.Request.Context(), h.database) != StatusOk {
		statusCode = http.StatusInternalServerError
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           h.appName,
		AppVersion:        h.appVersion,
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           h.appName,
		AppVersion:        h.appVersion,
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status: HealthServices{
			Database: h.check(ctx, h.database),
			Sessions: h.check(ctx, h.sessions),
		},
	})
}

func (h *HealthHandler) check(ctx context.Context, pinger ports.Pinger) string {
	if pinger == nil {
		return StatusDisabled
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := pinger.Ping(timeoutCtx); err != nil {
		return StatusDown
	}
	return StatusOk
}
