package http

import (
	"net/http"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/services"
)

type monthPayload struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

type categoryPayload struct {
	Category  string  `json:"category"`
	Spent     float64 `json:"spent"`
	Budget    float64 `json:"budget"`
	Remaining float64 `json:"remaining"`
}

type weekdayPayload struct {
	Weekday string  `json:"weekday"`
	Total   float64 `json:"total"`
}

type dayPayload struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type analyticsResponse struct {
	AsOf       time.Time         `json:"as_of"`
	Monthly    []monthPayload    `json:"monthly"`
	Categories []categoryPayload `json:"categories"`
	Weekdays   []weekdayPayload  `json:"weekdays"`
	Velocity   []dayPayload      `json:"velocity"`
}

func toAnalyticsResponse(report services.Report, asOf time.Time) analyticsResponse {
	resp := analyticsResponse{
		AsOf:       asOf,
		Monthly:    make([]monthPayload, 0, len(report.Monthly)),
		Categories: make([]categoryPayload, 0, len(report.Categories)),
		Weekdays:   make([]weekdayPayload, 0, len(report.Weekdays)),
		Velocity:   make([]dayPayload, 0, len(report.Velocity)),
	}
	for _, m := range report.Monthly {
		resp.Monthly = append(resp.Monthly, monthPayload{Year: m.Year, Month: int(m.Month), Total: m.Total})
	}
	for _, c := range report.Categories {
		resp.Categories = append(resp.Categories, categoryPayload{
			Category:  c.Category,
			Spent:     c.Spent,
			Budget:    c.Budget,
			Remaining: c.Remaining,
		})
	}
	for _, d := range report.Weekdays {
		resp.Weekdays = append(resp.Weekdays, weekdayPayload{Weekday: d.Weekday.String(), Total: d.Total})
	}
	for _, v := range report.Velocity {
		resp.Velocity = append(resp.Velocity, dayPayload{Date: v.Date.Format(dateLayout), Total: v.Total})
	}
	return resp
}

// handleAnalytics serves the chart series. Like the overview, only the
// default-instant response is cached.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	asOf, pinned, err := parseAsOf(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	cacheKey := cache.Key(owner, viewAnalytics)
	if !pinned {
		if cached, ok := s.reportCache.Get(cacheKey); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	report, err := s.analytics.BuildReport(r.Context(), owner, asOf)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := toAnalyticsResponse(report, asOf)
	if !pinned {
		s.reportCache.Set(cacheKey, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}
