package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/questpath-backend/internal/http/response"
	"github.com/yungbote/questpath-backend/internal/observability"
)

type MetricsHandler struct {
	collector *observability.Collector
}

func NewMetricsHandler(collector *observability.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

func (mh *MetricsHandler) Get(c *gin.Context) {
	response.RespondOK(c, mh.collector.Snapshot())
}
