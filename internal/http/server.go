// Package http exposes the JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

// Cached view names. One owner's entries all share the owner prefix so a
// single record change drops every derived view at once.
const (
	viewOverview  = "overview"
	viewAnalytics = "analytics"
)

type Server struct {
	http.Server

	expenses  *services.ExpenseService
	budgets   *services.BudgetService
	tracker   *services.TrackerService
	analytics *services.AnalyticsService
	assist    *services.AssistService
	exporter  *services.ExportService

	logger      *log.Logger
	rateLimiter *ratelimit.Limiter
	traceMW     *trace.Middleware

	overviewCache *cache.LRUCache[overviewResponse]
	reportCache   *cache.LRUCache[analyticsResponse]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// Options bundles the collaborators the server needs.
type Options struct {
	Addr      string
	Logger    *log.Logger
	Expenses  *services.ExpenseService
	Budgets   *services.BudgetService
	Tracker   *services.TrackerService
	Analytics *services.AnalyticsService
	Assist    *services.AssistService
	Exporter  *services.ExportService

	CacheTTL     time.Duration
	CacheMaxSize int
	RateLimit    ratelimit.Config
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.CacheMaxSize <= 0 {
		opts.CacheMaxSize = 1000
	}

	s := &Server{
		expenses:  opts.Expenses,
		budgets:   opts.Budgets,
		tracker:   opts.Tracker,
		analytics: opts.Analytics,
		assist:    opts.Assist,
		exporter:  opts.Exporter,

		logger:      opts.Logger.WithComponent(log.ComponentHTTP),
		rateLimiter: ratelimit.NewLimiter(opts.RateLimit),

		overviewCache: cache.NewLRUCache[overviewResponse](opts.CacheMaxSize, opts.CacheTTL),
		reportCache:   cache.NewLRUCache[analyticsResponse](opts.CacheMaxSize, opts.CacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	s.traceMW = trace.NewMiddleware(clientIP, opts.Logger)

	s.Server.Addr = opts.Addr
	s.Server.Handler = s.routes()

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/catalog", s.handleCatalog)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/overview", s.handleBudgetOverview)
	mux.HandleFunc("GET /api/budgets/{id}/progress", s.handleBudgetProgress)

	mux.HandleFunc("GET /api/debts", s.handleListDebts)
	mux.HandleFunc("POST /api/debts", s.handleCreateDebt)
	mux.HandleFunc("PUT /api/debts/{id}", s.handleUpdateDebt)
	mux.HandleFunc("DELETE /api/debts/{id}", s.handleDeleteDebt)
	mux.HandleFunc("GET /api/debts/summary", s.handleDebtSummary)
	mux.HandleFunc("POST /api/debts/{id}/payments", s.handleRecordPayment)
	mux.HandleFunc("GET /api/debts/{id}/payments", s.handleListPayments)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("GET /api/goals/progress", s.handleGoalProgress)

	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)

	mux.HandleFunc("POST /api/assist/receipt", s.handleScanReceipt)
	mux.HandleFunc("POST /api/assist/chat", s.handleChat)
	mux.HandleFunc("GET /api/assist/rates", s.handleRates)

	mux.HandleFunc("GET /api/export/{collection}", s.handleExport)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.rateLimiter.Middleware(clientIP, nil)

	var handler http.Handler = mux
	handler = limited(handler)
	handler = headers.Middleware(handler)
	handler = s.traceMW.Middleware(handler)
	handler = log.Middleware(s.logger)(handler)
	return handler
}

// InvalidateOwner drops every cached view derived from the owner's records.
// Local writes call it directly; entries stale from writes made by other
// processes age out with the cache TTL.
func (s *Server) InvalidateOwner(owner string) {
	prefix := cache.OwnerPrefix(owner)
	s.overviewCache.DeletePrefix(prefix)
	s.reportCache.DeletePrefix(prefix)
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
