package router

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dtroode/autocompany-server/internal/api/http/handler"
	"github.com/dtroode/autocompany-server/internal/api/http/middleware"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

// AuthService is what the auth routes and the bearer token check need.
type AuthService interface {
	handler.AuthService
	middleware.TokenParser
}

// Stores holds one store per dealership entity.
type Stores struct {
	Companies   model.ResourceStore[model.Company, int64]
	Directors   model.ResourceStore[model.Director, int64]
	Expenses    model.ResourceStore[model.Expense, int64]
	Workers     model.ResourceStore[model.Worker, int64]
	Clients     model.ResourceStore[model.Client, int64]
	Cars        model.ResourceStore[model.Car, string]
	Admissions  model.ResourceStore[model.Admission, int64]
	Accountants model.ResourceStore[model.Accountant, int64]
	Drivers     model.ResourceStore[model.Driver, int64]
	Sellers     model.ResourceStore[model.Seller, int64]
	Lifeguards  model.ResourceStore[model.Lifeguard, int64]
}

// Options tunes the HTTP surface.
type Options struct {
	CORSOrigins []string
	// TrustedProxies may set the client IP through X-Forwarded-For. Empty trusts none.
	TrustedProxies []string
	RequireAuth    bool
	SecureCookie   bool
	RateLimitRPS   float64
	RateLimitBurst int
}

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authService    AuthService
	exportService  handler.ExportService
	sessions       model.SessionStore
	stores         Stores
	contextManager model.ContextManager
	options        Options
	logger         *logger.Logger
}

// New creates a Router. A nil exportService leaves the export routes unregistered.
func New(
	authService AuthService,
	exportService handler.ExportService,
	sessions model.SessionStore,
	stores Stores,
	contextManager model.ContextManager,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		exportService:  exportService,
		sessions:       sessions,
		stores:         stores,
		contextManager: contextManager,
		options:        options,
		logger:         logger,
	}
}

// Register builds the engine. The session middleware runs for every request,
// unmatched routes included. The /auth limit runs before it, so throttled
// requests never create sessions.
func (r *Router) Register() *gin.Engine {
	handler.UseJSONFieldNames()

	logging := middleware.NewLogging(r.logger)
	sessionMW := middleware.NewSession(r.sessions, r.contextManager, r.options.SecureCookie, r.logger)
	limiter := middleware.NewRateLimit(r.options.RateLimitRPS, r.options.RateLimitBurst)

	e := gin.New()
	if err := e.SetTrustedProxies(r.options.TrustedProxies); err != nil {
		r.logger.Error("HTTP router: invalid trusted proxies, trusting none",
			"proxies", r.options.TrustedProxies,
			"error", err.Error())
		_ = e.SetTrustedProxies(nil)
	}
	e.Use(
		logging.Handle,
		gin.CustomRecoveryWithWriter(io.Discard, r.recover),
		cors.New(r.corsConfig()),
		limitPrefix("/auth/", limiter),
		sessionMW.Handle,
	)
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)

	r.registerAuthRoutes(e)

	protected := e.Group("")
	if r.options.RequireAuth {
		authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)
		protected.Use(authenticate.Handle)
	}
	r.registerResourceRoutes(protected)
	if r.exportService != nil {
		r.registerExportRoutes(protected)
	}

	return e
}

func limitPrefix(prefix string, limiter *middleware.RateLimit) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, prefix) {
			limiter.Handle(c)
			return
		}
		c.Next()
	}
}

func (r *Router) recover(c *gin.Context, recovered any) {
	r.logger.Error("HTTP router: recovered from panic",
		"path", c.Request.URL.Path,
		"panic", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = r.options.CORSOrigins
	if len(cfg.AllowOrigins) == 0 {
		// cors.New rejects a config that allows no origin at all.
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

func (r *Router) registerAuthRoutes(e *gin.Engine) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.options.SecureCookie, r.logger)

	g := e.Group("/auth")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.POST("/confirm-email", authHandler.ConfirmEmail)
	g.POST("/logout", authHandler.Logout)
	g.GET("/me", authHandler.Me)
}

func (r *Router) registerResourceRoutes(g *gin.RouterGroup) {
	s := r.stores
	lg := r.logger

	handler.NewResource("Company", "companies", s.Companies,
		handler.Int64Key(func(v *model.Company, k int64) { v.INN = k }), lg).Mount(g.Group("/companies"))
	handler.NewResource("Director", "directors", s.Directors,
		handler.Int64Key(func(v *model.Director, k int64) { v.INN = k }), lg).Mount(g.Group("/directors"))
	handler.NewResource("Expanse", "expanses", s.Expenses,
		handler.Int64Key(func(v *model.Expense, k int64) { v.ID = k }), lg).Mount(g.Group("/expanses"))
	handler.NewResource("Worker", "workers", s.Workers,
		handler.Int64Key(func(v *model.Worker, k int64) { v.ID = k }), lg).Mount(g.Group("/workers"))
	handler.NewResource("Client", "clients", s.Clients,
		handler.Int64Key(func(v *model.Client, k int64) { v.AppNumber = k }), lg).Mount(g.Group("/clients"))
	handler.NewResource("Car", "cars", s.Cars,
		handler.StringKey(func(v *model.Car, k string) { v.NumberVIN = k }), lg).Mount(g.Group("/cars"))
	handler.NewResource("Admission", "admissions", s.Admissions,
		handler.Int64Key(func(v *model.Admission, k int64) { v.IDNumber = k }), lg).Mount(g.Group("/admissions"))
	handler.NewResource("Accountant", "accountants", s.Accountants,
		handler.Int64Key(func(v *model.Accountant, k int64) { v.WorkerID = k }), lg).Mount(g.Group("/accountants"))
	handler.NewResource("Driver", "drivers", s.Drivers,
		handler.Int64Key(func(v *model.Driver, k int64) { v.WorkerID = k }), lg).Mount(g.Group("/drivers"))
	handler.NewResource("Seller", "sellers", s.Sellers,
		handler.Int64Key(func(v *model.Seller, k int64) { v.WorkerID = k }), lg).Mount(g.Group("/sellers"))
	handler.NewResource("Lifeguard", "lifeguards", s.Lifeguards,
		handler.Int64Key(func(v *model.Lifeguard, k int64) { v.WorkerID = k }), lg).Mount(g.Group("/lifeguards"))
}

func (r *Router) registerExportRoutes(g *gin.RouterGroup) {
	exportHandler := handler.NewExport(r.exportService, r.logger)

	eg := g.Group("/exports")
	eg.GET("", exportHandler.Entities)
	eg.POST("/:entity", exportHandler.Create)
	eg.GET("/:entity", exportHandler.List)
	eg.GET("/:entity/:name", exportHandler.Download)
	eg.DELETE("/:entity/:name", exportHandler.Delete)
}
