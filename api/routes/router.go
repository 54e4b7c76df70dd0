package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentkart/rentkart-backend/api/controllers"
	webhookcontrollers "github.com/rentkart/rentkart-backend/api/controllers/webhooks"
	"github.com/rentkart/rentkart-backend/api/middleware"
	authsvc "github.com/rentkart/rentkart-backend/internal/auth"
	bookingsvc "github.com/rentkart/rentkart-backend/internal/bookings"
	cartsvc "github.com/rentkart/rentkart-backend/internal/cart"
	couponsvc "github.com/rentkart/rentkart-backend/internal/coupons"
	homesvc "github.com/rentkart/rentkart-backend/internal/homeservices"
	ordersvc "github.com/rentkart/rentkart-backend/internal/orders"
	paymentsvc "github.com/rentkart/rentkart-backend/internal/payments"
	productsvc "github.com/rentkart/rentkart-backend/internal/products"
	settingsvc "github.com/rentkart/rentkart-backend/internal/settings"
	supportsvc "github.com/rentkart/rentkart-backend/internal/support"
	usersvc "github.com/rentkart/rentkart-backend/internal/users"
	wishlistsvc "github.com/rentkart/rentkart-backend/internal/wishlist"
	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/db"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth         authsvc.Service
	Users        usersvc.Service
	Products     productsvc.Service
	HomeServices homesvc.Service
	Cart         cartsvc.Service
	Wishlist     wishlistsvc.Service
	Orders       ordersvc.Service
	Payments     paymentsvc.Service
	Coupons      couponsvc.Service
	Settings     settingsvc.Service
	Bookings     bookingsvc.Service
	Support      supportsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsHandler http.Handler,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.RateLimit.RegisterWindow,
		cfg.RateLimit.RegisterIPLimit,
		cfg.RateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, redisClient, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/razorpay", webhookcontrollers.Razorpay(svcs.Payments, logg))
	})

	// Public catalog surface. No auth so the storefront can render without a
	// session.
	r.Group(func(r chi.Router) {
		r.Get("/api/v1/products", controllers.ListProducts(svcs.Products, logg))
		r.Get("/api/v1/products/{productId}", controllers.GetProduct(svcs.Products, logg))
		r.Get("/api/v1/services", controllers.ListHomeServices(svcs.HomeServices, logg))
		r.Get("/api/v1/services/{serviceId}", controllers.GetHomeService(svcs.HomeServices, logg))
		r.Get("/api/v1/settings", controllers.GetSettings(svcs.Settings, logg))
		r.Get("/api/v1/faqs", controllers.ListFAQs(svcs.Support, logg))
		r.Post("/api/v1/leads", controllers.CreateLead(svcs.Support, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.GetProfile(svcs.Users, logg))
			r.Put("/", controllers.UpdateProfile(svcs.Users, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.ListCart(svcs.Cart, logg))
			r.Post("/", controllers.AddCartItem(svcs.Cart, logg))
			r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
			r.Put("/{itemId}", controllers.UpdateCartItem(svcs.Cart, logg))
			r.Delete("/{itemId}", controllers.RemoveCartItem(svcs.Cart, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.ListWishlist(svcs.Wishlist, logg))
			r.Post("/{productId}", controllers.AddWishlistItem(svcs.Wishlist, logg))
			r.Delete("/{productId}", controllers.RemoveWishlistItem(svcs.Wishlist, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(svcs.Orders, logg))
			r.Post("/", controllers.CreateOrder(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(svcs.Orders, logg))
			r.Get("/{orderId}/payments", controllers.ListOrderPayments(svcs.Payments, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/create-intent", controllers.CreatePaymentIntent(svcs.Payments, logg))
			r.Post("/verify", controllers.VerifyPayment(svcs.Payments, logg))
			r.Post("/process", controllers.ProcessPayment(svcs.Payments, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Post("/validate", controllers.ValidateCoupon(svcs.Coupons, logg))
			r.Get("/available", controllers.ListAvailableCoupons(svcs.Coupons, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.ListMyBookings(svcs.Bookings, logg))
			r.Get("/{bookingId}", controllers.GetBooking(svcs.Bookings, logg))
		})

		r.Route("/support/tickets", func(r chi.Router) {
			r.Get("/", controllers.ListTickets(svcs.Support, logg))
			r.Post("/", controllers.CreateTicket(svcs.Support, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(svcs.Products, logg))
			r.Put("/{productId}", controllers.UpdateProduct(svcs.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(svcs.Products, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Post("/", controllers.CreateHomeService(svcs.HomeServices, logg))
			r.Put("/{serviceId}", controllers.UpdateHomeService(svcs.HomeServices, logg))
			r.Delete("/{serviceId}", controllers.DeleteHomeService(svcs.HomeServices, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.AdminListCoupons(svcs.Coupons, logg))
			r.Post("/", controllers.CreateCoupon(svcs.Coupons, logg))
			r.Put("/{couponId}", controllers.UpdateCoupon(svcs.Coupons, logg))
			r.Delete("/{couponId}", controllers.DeleteCoupon(svcs.Coupons, logg))
		})

		r.Put("/settings", controllers.UpdateSettings(svcs.Settings, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(svcs.Orders, logg))
			r.Put("/{orderId}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.AdminListBookings(svcs.Bookings, logg))
			r.Put("/{bookingId}/status", controllers.AdminUpdateBookingStatus(svcs.Bookings, logg))
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Post("/", controllers.CreateFAQ(svcs.Support, logg))
			r.Put("/{faqId}", controllers.UpdateFAQ(svcs.Support, logg))
			r.Delete("/{faqId}", controllers.DeleteFAQ(svcs.Support, logg))
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", controllers.AdminListLeads(svcs.Support, logg))
			r.Post("/{leadId}/contacted", controllers.AdminMarkLeadContacted(svcs.Support, logg))
		})

		r.Put("/tickets/{ticketId}/status", controllers.AdminUpdateTicketStatus(svcs.Support, logg))
	})

	return r
}
