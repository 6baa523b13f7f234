package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/forgeline/rfq-service/internal/delivery/http/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the service mux. The metrics endpoint is served from the
// same listener as the API.
func NewRouter(
	negotiationHandler *handlers.NegotiationHandler,
	ruleHandler *handlers.RuleHandler,
	rateHandler *handlers.RateHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/v1/negotiations", negotiationHandler.HandleNegotiations)
	mux.HandleFunc("/api/v1/negotiations/", negotiationHandler.HandleNegotiationActions)
	mux.HandleFunc("/api/v1/rules", ruleHandler.HandleRules)
	mux.HandleFunc("/api/v1/rules/", ruleHandler.HandleRuleActions)
	mux.HandleFunc("/api/v1/rates", rateHandler.HandleRates)

	return withLogging(mux)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(started),
		)
	})
}
