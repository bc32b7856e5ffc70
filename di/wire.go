//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"myfunzone/config"
	"myfunzone/infras/jwt"
	"myfunzone/infras/kafka"
	"myfunzone/infras/otel"
	"myfunzone/infras/postgres"
	"myfunzone/infras/redis"
	"myfunzone/infras/s3"
	"myfunzone/permissions"
	"myfunzone/shared/cache"
	"myfunzone/transport/http"
	"myfunzone/transport/http/middleware"
	"myfunzone/transport/http/router"

	analyticsRepository "myfunzone/internal/domains/analytics/repository"
	analyticsService "myfunzone/internal/domains/analytics/service"
	announcementRepository "myfunzone/internal/domains/announcement/repository"
	announcementService "myfunzone/internal/domains/announcement/service"
	authService "myfunzone/internal/domains/auth/service"
	bookingRepository "myfunzone/internal/domains/booking/repository"
	bookingService "myfunzone/internal/domains/booking/service"
	gameRepository "myfunzone/internal/domains/game/repository"
	gameService "myfunzone/internal/domains/game/service"
	issueRepository "myfunzone/internal/domains/issue/repository"
	reviewRepository "myfunzone/internal/domains/review/repository"
	slotRepository "myfunzone/internal/domains/slot/repository"
	userRepository "myfunzone/internal/domains/user/repository"
	userService "myfunzone/internal/domains/user/service"

	analyticsHandler "myfunzone/internal/handlers/analytics"
	announcementHandler "myfunzone/internal/handlers/announcement"
	authHandler "myfunzone/internal/handlers/auth"
	bookingHandler "myfunzone/internal/handlers/booking"
	gameHandler "myfunzone/internal/handlers/game"
	healthHandler "myfunzone/internal/handlers/health"
	issueHandler "myfunzone/internal/handlers/issue"
	reviewHandler "myfunzone/internal/handlers/review"
	slotHandler "myfunzone/internal/handlers/slot"
	userHandler "myfunzone/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Txer), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var gameDomain = wire.NewSet(
	gameRepository.New,
	gameService.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	provideSlotService,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewPayment,
	bookingRepository.NewCheckin,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	provideReviewService,
)

var announcementDomain = wire.NewSet(
	announcementRepository.New,
	announcementService.New,
)

var issueDomain = wire.NewSet(
	issueRepository.New,
	provideIssueService,
)

var analyticsDomain = wire.NewSet(
	analyticsRepository.New,
	analyticsService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	gameDomain,
	slotDomain,
	bookingDomain,
	reviewDomain,
	announcementDomain,
	issueDomain,
	analyticsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	userHandler.New,
	gameHandler.New,
	slotHandler.New,
	bookingHandler.New,
	reviewHandler.New,
	announcementHandler.New,
	issueHandler.New,
	analyticsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
