package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopswift/internal/catalog"
	"shopswift/internal/domain"
	"shopswift/internal/enhancer"
	"shopswift/internal/service/checkout"
	"shopswift/internal/service/session"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type catalogService interface {
	List(f catalog.Filter) []domain.Product
	Get(id string) (domain.Product, error)
	Add(in catalog.ProductInput) (domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Remove(id string) error
	ToggleStock(id string) (domain.Product, error)
	Stats() catalog.Stats
	Categories() []string
}

type sessionService interface {
	Issue(ctx context.Context) (*session.Session, error)
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

type checkoutService interface {
	PlaceOrder(ctx context.Context, cart checkout.Cart, user *domain.User, form domain.CheckoutForm) (*domain.Confirmation, error)
}

// Deps are the services behind the routes. Storage is only pinged by /readyz.
type Deps struct {
	Catalog        catalogService
	Sessions       sessionService
	Checkout       checkoutService
	Enhancer       enhancer.Enhancer
	Storage        pinger
	AllowedOrigins []string
}

func (d Deps) validate() error {
	switch {
	case d.Catalog == nil:
		return errors.New("httpserver: catalog is required")
	case d.Sessions == nil:
		return errors.New("httpserver: sessions are required")
	case d.Checkout == nil:
		return errors.New("httpserver: checkout is required")
	case d.Enhancer == nil:
		return errors.New("httpserver: enhancer is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.LoggerWithWriter(zap.NewStdLog(logger.Named("access")).Writer()),
		gin.Recovery(),
		cors.New(corsConfig(deps.AllowedOrigins)),
	)
	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "Resource not found")
	})

	h := &handlers{
		catalog:  deps.Catalog,
		sessions: deps.Sessions,
		checkout: deps.Checkout,
		enhancer: deps.Enhancer,
		logger:   logger.Named("api"),
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Storage, deps.Catalog))

	router.POST("/sessions", h.createSession)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/categories", h.listCategories)

	s := router.Group("/", sessionMiddleware(deps.Sessions))
	s.GET("/cart", h.getCart)
	s.DELETE("/cart", h.clearCart)
	s.POST("/cart/items", h.addCartItem)
	s.PATCH("/cart/items/:productId", h.updateCartItem)
	s.POST("/cart/items/:productId/step", h.stepCartItem)
	s.DELETE("/cart/items/:productId", h.removeCartItem)

	s.POST("/auth/login", h.login)
	s.POST("/auth/signup", h.signup)
	s.POST("/auth/logout", h.logout)
	s.GET("/me", h.me)

	s.POST("/checkout", h.placeOrder)

	admin := s.Group("/admin", requireAdmin())
	admin.GET("/stats", h.adminStats)
	admin.GET("/products", h.listProducts)
	admin.POST("/products", h.addProduct)
	admin.DELETE("/products/:id", h.removeProduct)
	admin.POST("/products/:id/toggle-stock", h.toggleStock)
	admin.POST("/products/enhance", h.enhanceDescription)
	admin.POST("/products/import", h.importProducts)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

type handlers struct {
	catalog  catalogService
	sessions sessionService
	checkout checkoutService
	enhancer enhancer.Enhancer
	logger   *zap.Logger
}
