package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/questpath-backend/internal/clients/redis"
	"github.com/yungbote/questpath-backend/internal/http/response"
	"github.com/yungbote/questpath-backend/internal/platform/logger"
)

const apiVersion = "1.0.0"

type HealthHandler struct {
	log   *logger.Logger
	db    *gorm.DB
	cache redisclient.Cache
}

func NewHealthHandler(log *logger.Logger, db *gorm.DB, cache redisclient.Cache) *HealthHandler {
	handlerLog := log.With("handler", "HealthHandler")
	return &HealthHandler{log: handlerLog, db: db, cache: cache}
}

// HealthCheck probes every critical dependency. Any failure turns the
// whole response into a 503 for load balancers.
func (hh *HealthHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	var errs []string

	if hh.db != nil {
		if err := hh.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
			checks["database"] = "disconnected"
			errs = append(errs, "database: "+err.Error())
			hh.log.Error("Health check database probe failed", "error", err)
		} else {
			checks["database"] = "connected"
		}
	}
	if hh.cache != nil {
		if err := hh.cache.Ping(ctx); err != nil {
			checks["redis"] = "disconnected"
			errs = append(errs, "redis: "+err.Error())
			hh.log.Error("Health check redis probe failed", "error", err)
		} else {
			checks["redis"] = "connected"
		}
	}

	body := gin.H{
		"status":  "healthy",
		"checks":  checks,
		"version": apiVersion,
	}
	if len(errs) > 0 {
		body["status"] = "unhealthy"
		body["errors"] = errs
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	response.RespondOK(c, body)
}

func (hh *HealthHandler) Ready(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"status":  "ready",
		"message": "Application is ready to receive traffic",
	})
}

func (hh *HealthHandler) Live(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"status":  "alive",
		"message": "Application process is alive",
	})
}
