package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// RequestMetrics counts and times every request by its route template.
func RequestMetrics(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.GaugeRequests.Inc()
		begin := time.Now()
		defer func() {
			m.GaugeRequests.Dec()
			if r := recover(); r != nil {
				m.CounterHandleRequestPanic.Inc()
				panic(r)
			}
		}()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HistRequestDuration.WithLabelValues(route).Observe(time.Since(begin).Seconds())
		m.CounterRequests.With(prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}).Inc()
	}
}

// LogRequest logs one line per request at debug level.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(begin).String(),
			"ua":      c.Request.UserAgent(),
		}).Debug("request served")
	}
}
