package middleware

import (
	"net/http"
	"time"

	"health-program-registry/internal/service"

	"github.com/gorilla/mux"
)

type MetricsMiddleware struct {
	metrics *service.MetricsService
}

func NewMetricsMiddleware(metrics *service.MetricsService) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if m.metrics == nil {
			next.ServeHTTP(w, req)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, req)

		// Label by route template so ids do not explode cardinality
		path := req.URL.Path
		if route := mux.CurrentRoute(req); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}

		m.metrics.ObserveHTTPRequest(req.Method, path, recorder.status, time.Since(start))
	})
}
