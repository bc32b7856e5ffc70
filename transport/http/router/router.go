package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"myfunzone/config"
	"myfunzone/internal/handlers/analytics"
	"myfunzone/internal/handlers/announcement"
	"myfunzone/internal/handlers/auth"
	"myfunzone/internal/handlers/booking"
	"myfunzone/internal/handlers/game"
	"myfunzone/internal/handlers/health"
	"myfunzone/internal/handlers/issue"
	"myfunzone/internal/handlers/review"
	"myfunzone/internal/handlers/slot"
	"myfunzone/internal/handlers/user"
	"myfunzone/transport/http/middleware"
)

type DomainHandlers struct {
	Health       health.Handler
	Auth         auth.Handler
	User         user.Handler
	Game         game.Handler
	Slot         slot.Handler
	Booking      booking.Handler
	Review       review.Handler
	Announcement announcement.Handler
	Issue        issue.Handler
	Analytics    analytics.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	appMiddleware  middleware.AppMiddleware
	authMiddleware middleware.AuthRole
	cfg            *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.cfg.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.cfg.App.CORS.AllowedOrigins,
			AllowedMethods:   r.cfg.App.CORS.AllowedMethods,
			AllowedHeaders:   r.cfg.App.CORS.AllowedHeaders,
			AllowCredentials: r.cfg.App.CORS.AllowCredentials,
			MaxAge:           r.cfg.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.appMiddleware.Tracing)
	router.Use(r.appMiddleware.RateLimit())

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.authMiddleware.APIKey)
		routerGroup.Use(r.authMiddleware.Auth)
		routerGroup.Use(r.authMiddleware.RBAC)

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Game.Router(routerGroup)
		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Announcement.Router(routerGroup)
		r.DomainHandlers.Issue.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
	})
}

func New(
	domainHandlers DomainHandlers,
	appMiddleware middleware.AppMiddleware,
	authMiddleware middleware.AuthRole,
	cfg *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		appMiddleware:  appMiddleware,
		authMiddleware: authMiddleware,
		cfg:            cfg,
	}
}
