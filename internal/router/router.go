package router

import (
	"net/http"

	"github.com/golden-lotus/pos-service/internal/api"
	"github.com/golden-lotus/pos-service/internal/api/handler"
	"github.com/golden-lotus/pos-service/internal/config"
	"github.com/golden-lotus/pos-service/internal/db"
	"github.com/golden-lotus/pos-service/internal/db/repository"
	"github.com/golden-lotus/pos-service/internal/events"
	"github.com/golden-lotus/pos-service/internal/middleware"
	"github.com/golden-lotus/pos-service/internal/models"
	"github.com/golden-lotus/pos-service/internal/service"
	"github.com/golden-lotus/pos-service/internal/storage"
	"github.com/golden-lotus/pos-service/internal/websockets"
)

// Router handles HTTP routing
type Router struct {
	mux      *http.ServeMux
	database *db.Postgres
}

// New creates a new router with all services wired up
func New(database *db.Postgres, hub *websockets.Hub, bus events.Bus, images *storage.DiskImageStore, cfg *config.Config) *Router {
	repos := repository.NewRepositories(database)

	authService := service.NewAuthService(repos.User, service.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	})
	occupancy := service.NewOccupancyManager(repos.Table)
	orderService := service.NewOrderService(repos.Order, occupancy, bus)
	analyticsService := service.NewAnalyticsService(repos.Analytics)
	menuService := service.NewMenuService(repos.Category, repos.Menu, images)
	tableService := service.NewTableService(repos.Table)
	userService := service.NewUserService(repos.User)
	receiptService := service.NewReceiptService(repos.Order)

	r := &Router{
		mux:      http.NewServeMux(),
		database: database,
	}

	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService, analyticsService)
	tableHandler := handler.NewTableHandler(tableService)
	categoryHandler := handler.NewCategoryHandler(menuService)
	menuHandler := handler.NewMenuHandler(menuService, images)
	userHandler := handler.NewUserHandler(userService)
	printHandler := handler.NewPrintHandler(receiptService)
	wsHandler := handler.NewWebSocketHandler(hub)

	// Public routes
	r.mux.HandleFunc("/health", r.handleHealth)
	r.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))
	r.mux.HandleFunc("/ws", wsHandler.HandleWebSocket)
	r.mux.Handle("/api/auth/login", middleware.Logger(http.HandlerFunc(authHandler.HandleLogin)))
	r.mux.Handle("/api/auth/register", middleware.Logger(http.HandlerFunc(authHandler.HandleRegister)))
	r.mount("/print", http.HandlerFunc(printHandler.HandlePrint))
	r.mount("/api/tables", r.stripAPI(http.HandlerFunc(tableHandler.HandleTables)))
	r.mount("/api/categories", r.stripAPI(http.HandlerFunc(categoryHandler.HandleCategories)))

	// Anonymous callers may place and pay orders; a Bearer token, when
	// present, attributes the mutation to its user. The analytics routes
	// under /api/orders enforce the admin role in the handler.
	optionalAuth := middleware.OptionalAuth(authService)
	r.mount("/api/menus", r.stripAPI(http.HandlerFunc(menuHandler.HandleMenuItems)), optionalAuth)
	r.mount("/api/orders", r.stripAPI(http.HandlerFunc(orderHandler.HandleOrders)), optionalAuth)

	// Protected routes
	r.mux.Handle("/api/auth/me", middleware.Logger(middleware.Auth(authService)(http.HandlerFunc(authHandler.HandleMe))))

	// Admin routes
	r.mount("/api/users", r.stripAPI(http.HandlerFunc(userHandler.HandleUsers)),
		middleware.Auth(authService), middleware.RequireRole(models.RoleAdmin))

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// mount registers a handler for a prefix with and without trailing slash,
// wrapped in the logging middleware and any supplied middleware, first wrap
// outermost
func (r *Router) mount(prefix string, h http.Handler, wraps ...func(http.Handler) http.Handler) {
	for i := len(wraps) - 1; i >= 0; i-- {
		h = wraps[i](h)
	}
	h = middleware.Logger(h)
	r.mux.Handle(prefix, h)
	r.mux.Handle(prefix+"/", h)
}

// stripAPI removes the /api prefix so handlers see their own paths
func (r *Router) stripAPI(h http.Handler) http.Handler {
	return http.StripPrefix("/api", h)
}

// handleHealth reports service and database health
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if err := r.database.HealthCheck(req.Context()); err != nil {
		api.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
