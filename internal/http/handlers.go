package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ready"})
}

type metricsResponse struct {
	TotalRequests   int64 `json:"total_requests"`
	LastDurationUs  int64 `json:"last_duration_us"`
	ActiveClients   int   `json:"active_clients"`
	CachedOverviews int   `json:"cached_overviews"`
	CachedAnalytics int   `json:"cached_analytics"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m := s.traceMW.GetMetrics()
	writeJSON(w, http.StatusOK, metricsResponse{
		TotalRequests:   m.TotalRequests,
		LastDurationUs:  m.LastDurationUs,
		ActiveClients:   s.rateLimiter.ActiveClients(),
		CachedOverviews: s.overviewCache.Size(),
		CachedAnalytics: s.reportCache.Size(),
	})
}

type currencyPayload struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type catalogResponse struct {
	Categories []string          `json:"categories"`
	Currencies []currencyPayload `json:"currencies"`
	Periods    []string          `json:"periods"`
}

// handleCatalog serves the suggestion lists clients populate pickers from.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	currencies := make([]currencyPayload, 0, len(core.SupportedCurrencies))
	for _, c := range core.SupportedCurrencies {
		currencies = append(currencies, currencyPayload{Code: c.Code, Symbol: c.Symbol, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Categories: core.SuggestedCategories,
		Currencies: currencies,
		Periods: []string{
			string(core.Weekly),
			string(core.Monthly),
			string(core.Quarterly),
			string(core.Yearly),
		},
	})
}
