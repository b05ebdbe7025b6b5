// Package httpapi wires the Gin engine: middleware order, service
// construction, page and JSON routes, the admin group and fallbacks.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-domain-finder/internal/config"
	"github.com/tbourn/go-domain-finder/internal/domain"
	"github.com/tbourn/go-domain-finder/internal/http/handlers"
	"github.com/tbourn/go-domain-finder/internal/http/middleware"
	"github.com/tbourn/go-domain-finder/internal/repo"
	"github.com/tbourn/go-domain-finder/internal/services"
	"github.com/tbourn/go-domain-finder/internal/web"
)

// listingRepoShim adapts the repo free functions to services.ListingRepo.
type listingRepoShim struct{}

func (listingRepoShim) CountAvailable(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountAvailable(ctx, db)
}

func (listingRepoShim) ListAvailablePage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.DomainListing, error) {
	return repo.ListAvailablePage(ctx, db, offset, limit)
}

func (listingRepoShim) ListingStats(ctx context.Context, db *gorm.DB) (int64, *repo.PriceRange, error) {
	return repo.ListingStats(ctx, db)
}

func (listingRepoShim) ListHomepageFeatured(ctx context.Context, db *gorm.DB, limit int) ([]domain.DomainListing, error) {
	return repo.ListHomepageFeatured(ctx, db, limit)
}

// Deps carries the outbound integrations. Either field may be nil: a nil
// Captcha skips human verification, a nil Notifier skips notification mail.
type Deps struct {
	Captcha  services.CaptchaVerifier
	Notifier services.Notifier
}

// corsMethods covers the public JSON surface and the admin API.
const contactPath = "/ajax/contact"

var corsMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}

// RegisterRoutes attaches middleware and routes to r.
//
// Middleware order:
//  1. otelgin: trace every request
//  2. RequestID
//  3. RedactingLogger: access log, request-scoped logger
//  4. Recovery
//  5. body size limit
//  6. Metrics (+ /metrics)
//  7. global rate limit per client IP, except the contact POST
//  8. CORS, security headers, gzip
//
// The contact endpoint is exempt from the global limit. It has its own
// stricter limiter behind IdempotencyValidator, so replays of an accepted
// submission spend no token at all.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, deps Deps, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key", middleware.HeaderIdempotencyKey},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(cfg.MaxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	global := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	global.Skip = isContactSubmit
	r.Use(global.Handler())

	r.Use(corsMiddleware(cfg.CORS))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		CSP:             cfg.Security.CSP,
		NoStorePrefixes: []string{"/admin", "/ajax"},
		EnablePolicy:    true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}
	r.HTMLRender = renderer
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Services
	listingSvc := services.NewListingService(db, listingRepoShim{}, cfg.ListingPage)
	contactSvc := &services.ContactService{
		DB:             db,
		Captcha:        deps.Captcha,
		Notifier:       deps.Notifier,
		IdempotencyTTL: cfg.IdempotencyTTL,
		NotifyTimeout:  cfg.Mail.Timeout,
	}
	contentSvc := services.NewContentService(db, cfg.Recaptcha.SiteKey)
	h := handlers.New(listingSvc, contactSvc, contentSvc)

	r.NoRoute(h.NotFound)
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Pages
	r.GET("/", h.Home)
	r.GET("/domains", h.Domains)
	r.GET("/blog", h.BlogList)
	r.GET("/blog/:id", h.BlogDetail)
	r.GET("/contact", h.ContactPage)
	r.GET("/privacy", h.Privacy)
	r.GET("/terms-uk", h.TermsUK)
	r.GET("/complaints-appeals", h.ComplaintsAppeals)

	// JSON
	r.GET("/domains/load-more", h.LoadMoreDomains)

	contactLimit := middleware.NewRateLimiter(cfg.ContactRateRPS, cfg.ContactRateBurst, middleware.KeyByIP())
	contactLimit.Reject = func(c *gin.Context) {
		c.JSON(http.StatusTooManyRequests, handlers.ContactResponse{
			Message: "Too many messages. Please wait a moment and try again.",
		})
	}
	r.POST(contactPath,
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, contactReplayLookup(db)),
		contactLimit.Handler(),
		h.SubmitContact,
	)

	if cfg.Admin.Password != "" {
		registerAdmin(r.Group("/admin", gin.BasicAuth(gin.Accounts{cfg.Admin.User: cfg.Admin.Password})), db)
	}
	return nil
}

// isContactSubmit matches the routed contact POST.
func isContactSubmit(c *gin.Context) bool {
	return c.Request.Method == http.MethodPost && c.FullPath() == contactPath
}

func registerAdmin(g *gin.RouterGroup, db *gorm.DB) {
	a := handlers.NewAdmin(&services.AdminService{DB: db})
	g.GET("/submissions", a.ListSubmissions)
	g.PATCH("/submissions/:id/responded", a.MarkResponded)
	g.POST("/contact-info/:id/activate", a.ActivateContactInfo)
	g.POST("/homepage/:id/activate", a.ActivateHomePage)
	g.POST("/domains", a.CreateListing)
	g.DELETE("/currencies/:id", a.DeleteCurrency)
	g.DELETE("/statuses/:id", a.DeleteStatus)
}

// contactReplayLookup reports whether an Idempotency-Key already maps to a
// stored contact submission.
func contactReplayLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, key string, now time.Time) (bool, error) {
		_, err := repo.GetIdempotency(ctx, db, services.ContactScope, key, now)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, repo.ErrNotFound):
			return false, nil
		default:
			return false, err
		}
	}
}

// corsMiddleware allows any origin when none are configured. Credentials are
// never allowed; the admin API uses Basic auth from non-browser clients.
func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  corsMethods,
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(c)
}

// limitBody caps request bodies at maxBytes; reads past the cap fail and
// the JSON binders answer 400. Non-positive values disable the cap.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
