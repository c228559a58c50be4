package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

// sensitiveQueryParams are redacted from logs
var sensitiveQueryParams = map[string]bool{
	"token": true, "password": true, "secret": true, "key": true,
	"auth": true, "api_key": true, "apikey": true, "email": true,
}

// ObservabilityMiddleware records request metrics and logs every request
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		// Route template, not the raw path, keeps label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, statusStr).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, statusStr).Inc()

		fields := []zap.Field{
			zap.String("route", route),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if session, err := GetSession(c); err == nil {
			fields = append(fields, zap.String("user_id", session.UserID), zap.String("role", string(session.Role)))
		}

		if status >= 400 {
			fields = append(fields, errorFields(c)...)
		}

		logger.LogHTTPRequest(method, c.Request.URL.Path, status, duration, fields...)
	}
}

func errorFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if len(c.Params) > 0 {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		fields = append(fields, zap.Any("route_params", params))
	}

	if query := c.Request.URL.Query(); len(query) > 0 {
		sanitized := make(map[string]string, len(query))
		for k, v := range query {
			if !sensitiveQueryParams[strings.ToLower(k)] && len(v) > 0 {
				sanitized[k] = v[0]
			}
		}
		if len(sanitized) > 0 {
			fields = append(fields, zap.Any("query_params", sanitized))
		}
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}
	return fields
}
