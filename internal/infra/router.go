package infra

import (
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	_ "github.com/lexcongreso/registration/docs"
	"github.com/lexcongreso/registration/internal/cache"
	"github.com/lexcongreso/registration/internal/config"
	"github.com/lexcongreso/registration/internal/events"
	"github.com/lexcongreso/registration/internal/handlers"
	"github.com/lexcongreso/registration/internal/i18n"
	"github.com/lexcongreso/registration/internal/middleware"
	"github.com/lexcongreso/registration/internal/repository"
	"github.com/lexcongreso/registration/internal/service"
	"github.com/lexcongreso/registration/internal/session"
	"github.com/lexcongreso/registration/internal/validation"
	"github.com/lexcongreso/registration/internal/webhook"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
)

// Router wires repositories, services and handlers, mongoClient is only used by the mongo leads backend
func Router(
	cfg config.Config,
	pgPool *pgxpool.Pool,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
	publisher events.Publisher,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	validator, err := validation.Echo(i18n.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator - %w", err)
	}
	e.Validator = validator
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(e)

	// Configs
	sessionCfg := cfg.SessionCfg
	webhookCfg := cfg.WebhookCfg
	checkoutCfg := cfg.CheckoutCfg

	// Extra functionality
	sessionIssuer := session.NewIssuer(sessionCfg.Issuer, sessionCfg.SigningMethod, sessionCfg.TimeToLive, sessionCfg.PrivateKey)
	sessionValidator := session.NewValidator(sessionCfg.SigningMethod, sessionCfg.PublicKey)
	responseCache := cache.NewRedisWebhookResponseCache(redisClient, cfg.RedisCfg.WebhookResponseTTL)
	webhookClient := webhook.NewHTTPClient(webhook.Endpoints{
		PhoneLookup:   webhookCfg.PhoneLookupURL,
		PayPalCapture: webhookCfg.PayPalCaptureURL,
		StripeOrder:   webhookCfg.StripeOrderURL,
		ReceiptUpload: webhookCfg.ReceiptUploadURL,
	}, &http.Client{Timeout: webhookCfg.Timeout}, webhookCfg.PayPalCaptureTimeout)

	// Middleware
	localeMw := middleware.Locale()
	sessionMw := middleware.CheckoutSession(sessionValidator, sessionCfg.CookieName)

	// Repositories
	var customerRps repository.CustomerRepository
	switch cfg.LeadsBackend {
	case config.LeadsBackendMongo:
		customerRps = repository.NewMongoCustomerRepository(mongoClient)
	default:
		customerRps = repository.NewPostgresCustomerRepository(pgPool)
	}
	paymentRps := repository.NewPostgresPaymentRepository(pgPool)

	// Services
	barristaSvc := service.NewBarristaService(webhookClient)
	leadSvc := service.NewLeadService(customerRps, barristaSvc, publisher)
	checkoutSvc := service.NewCheckoutService(service.CheckoutCfg{
		StripeSuccessURL: checkoutCfg.StripeSuccessURL,
		StripeCancelURL:  checkoutCfg.StripeCancelURL,
	}, customerRps, responseCache, webhookClient, publisher, sessionIssuer)
	confirmationSvc := service.NewConfirmationService(customerRps, paymentRps, responseCache, checkoutCfg.PaymentPollInterval)

	// Handlers
	leadHandler := handlers.NewLeadHTTPHandler(leadSvc)
	pricingHandler := handlers.NewPricingHTTPHandler(checkoutSvc)
	barristaHandler := handlers.NewBarristaHTTPHandler(barristaSvc)
	paymentHandler := handlers.NewPaymentHTTPHandler(checkoutSvc, handlers.PaymentCfg{Https: sessionCfg.Https, SessionCookie: sessionCfg.CookieName})
	confirmationHandler := handlers.NewConfirmationHTTPHandler(confirmationSvc)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes
	api := e.Group("/api", localeMw)

	// leads
	api.POST("/leads", leadHandler.Submit)
	api.POST("/barristas/validate", barristaHandler.Validate)

	// pricing
	api.POST("/pricing/academic", pricingHandler.Academic)

	// payments
	paymentsApi := api.Group("/payments")
	paymentsApi.POST("/dispatch", paymentHandler.Dispatch)
	paymentsApi.POST("/paypal/capture", paymentHandler.CapturePayPal)
	paymentsApi.POST("/stripe/checkout", paymentHandler.StartStripeCheckout)
	paymentsApi.POST("/transfer/receipt", paymentHandler.UploadReceipt)

	// confirmation
	api.GET("/confirmation", confirmationHandler.Confirmation, sessionMw)
	api.GET("/revalidation", confirmationHandler.Revalidation)

	return e, nil
}
