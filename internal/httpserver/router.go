package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"tsrfashion-backend/internal/domain"
	authsvc "tsrfashion-backend/internal/service/auth"
	checkoutsvc "tsrfashion-backend/internal/service/checkout"
	contactsvc "tsrfashion-backend/internal/service/contact"
)

type authService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	IssueTokens(ctx context.Context, customerID string) (string, string, error)
	ResolveActor(ctx context.Context, token string) domain.Actor
	Logout(ctx context.Context, token string) error
	UpdateProfileFields(ctx context.Context, customerID, fullName, phone string) (*domain.Customer, error)
	ChangePassword(ctx context.Context, customerID, current, next string) error
	AccessTTLSeconds() int
}

type profileService interface {
	Sync(ctx context.Context, actor domain.Actor, details domain.ShippingDetails) (*domain.ShippingProfile, error)
	Load(ctx context.Context, actor domain.Actor) (*domain.ShippingProfile, error)
}

type productService interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

type cartService interface {
	Resolve(ctx context.Context, actor domain.Actor, anonymousID string) (*domain.Cart, error)
	AddItem(ctx context.Context, actor domain.Actor, anonymousID, slug string, quantity int) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, actor domain.Actor, anonymousID, itemID string, quantity int) (*domain.Cart, error)
	Clear(ctx context.Context, actor domain.Actor, anonymousID string) error
}

type checkoutService interface {
	State(ctx context.Context, actor domain.Actor, anonymousID string) checkoutsvc.State
	SubmitAddress(ctx context.Context, actor domain.Actor, anonymousID string, form checkoutsvc.ShippingForm) (map[string]string, error)
	EditAddress(actor domain.Actor, anonymousID string) checkoutsvc.State
	Confirm(ctx context.Context, actor domain.Actor, anonymousID, paymentMethod, note, idemKey string) (string, error)
}

type orderService interface {
	Track(ctx context.Context, actor domain.Actor, number string) (*domain.Order, error)
	Recent(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
}

type contactService interface {
	Submit(ctx context.Context, in contactsvc.SubmitInput) (*domain.ContactMessage, map[string]string, error)
}

// Deps carries the services the router needs.
type Deps struct {
	AuthSvc     authService
	ProfileSvc  profileService
	ProductSvc  productService
	CartSvc     cartService
	CheckoutSvc checkoutService
	OrderSvc    orderService
	ContactSvc  contactService
}

func (d Deps) validate() error {
	if d.AuthSvc == nil || d.ProfileSvc == nil || d.ProductSvc == nil ||
		d.CartSvc == nil || d.CheckoutSvc == nil || d.OrderSvc == nil || d.ContactSvc == nil {
		return errors.New("httpserver: missing service dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = corsOrigins
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", headerAnonymousID, headerIdempotencyKey)
		router.Use(cors.New(cfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.Use(actorMiddleware(deps.AuthSvc))

	router.POST("/auth/signup", signupHandler(deps.AuthSvc))
	router.POST("/auth/login", loginHandler(deps.AuthSvc))
	router.POST("/auth/logout", logoutHandler(deps.AuthSvc))

	me := router.Group("/me", requireAuth())
	me.GET("", meHandler(deps.ProfileSvc))
	me.PUT("/profile", updateProfileHandler(deps.AuthSvc, deps.ProfileSvc))
	me.PUT("/password", changePasswordHandler(deps.AuthSvc))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:slug", getProductHandler(deps.ProductSvc))

	router.GET("/cart", getCartHandler(deps.CartSvc))
	router.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	router.PATCH("/cart/items/:itemID", changeCartItemHandler(deps.CartSvc))
	router.DELETE("/cart", clearCartHandler(deps.CartSvc))

	router.GET("/checkout", checkoutStateHandler(deps.CheckoutSvc))
	router.POST("/checkout/address", submitAddressHandler(deps.CheckoutSvc))
	router.POST("/checkout/edit", editAddressHandler(deps.CheckoutSvc))
	router.POST("/checkout/confirm", confirmHandler(deps.CheckoutSvc))

	router.GET("/orders", recentOrdersHandler(deps.OrderSvc))
	router.GET("/orders/:number", trackOrderHandler(deps.OrderSvc))

	router.POST("/support/contact", contactHandler(deps.ContactSvc))

	return router, nil
}
