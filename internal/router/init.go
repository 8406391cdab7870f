package router

import (
	"github.com/oksasatya/juicyplanet/internal/application"
	"github.com/oksasatya/juicyplanet/internal/container"
	pginfra "github.com/oksasatya/juicyplanet/internal/infrastructure/postgres"
	"github.com/oksasatya/juicyplanet/internal/infrastructure/search"
	handlers "github.com/oksasatya/juicyplanet/internal/interface/http"
	"github.com/oksasatya/juicyplanet/internal/router/modules"
	"github.com/oksasatya/juicyplanet/pkg/helpers"
)

// InitModules builds repositories, services and handlers from c and adds
// every feature module to r. Call once at startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Cfg

	users := pginfra.NewUserRepository(c.DB)
	tokens := pginfra.NewEmailTokenRepository(c.DB)

	issuer := application.NewIssuer(tokens, application.NewDelivery(cfg), cfg.OTPTTL, cfg.OTPResendInterval)
	authSvc := application.NewAuthService(users, tokens, issuer, c.Mail, c.JWT, c.Logger, cfg.BcryptCost)
	authHandler := handlers.NewAuthHandler(authSvc, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), cfg.PendingCookieTTL)

	var index application.ProductIndex
	if c.ES != nil {
		index = search.NewProductIndex(c.ES, cfg.ESProductsIndex)
	}
	var images application.ImageStore
	if c.GCS != nil && cfg.GCSBucket != "" {
		images = helpers.NewGCSUploader(c.GCS, cfg.GCSBucket)
	}
	catalogSvc := application.NewCatalogService(pginfra.NewProductRepository(c.DB), index, images, c.Cache(), c.Logger)

	testimonialSvc := application.NewTestimonialService(pginfra.NewTestimonialRepository(c.DB), c.Logger)
	contactSvc := application.NewContactService(pginfra.NewContactRepository(c.DB), c.Mail, cfg.AdminEmail, c.Logger)
	paymentSvc := application.NewPaymentService(c.Logger)

	limits := modules.Limits{RDB: c.Cache(), Allow: modules.AllowInternal(cfg.IsProduction())}

	r.Add(
		modules.NewAuthModule(authHandler, c.JWT, limits),
		modules.NewCatalogModule(handlers.NewCatalogHandler(catalogSvc), c.JWT, limits),
		modules.NewTestimonialModule(handlers.NewTestimonialHandler(testimonialSvc), c.JWT, limits),
		modules.NewContactModule(handlers.NewContactHandler(contactSvc), c.JWT, limits),
		modules.NewPaymentModule(handlers.NewPaymentHandler(paymentSvc), c.JWT, limits),
		modules.NewEmailModule(handlers.NewEmailHandler(c.Mail, c.Logger, cfg), c.JWT, limits),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limits))
	}
}
