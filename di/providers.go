package di

import (
	"myfunzone/config"
	"myfunzone/infras/otel"
	bookingRepository "myfunzone/internal/domains/booking/repository"
	gameRepository "myfunzone/internal/domains/game/repository"
	issueRepository "myfunzone/internal/domains/issue/repository"
	issueService "myfunzone/internal/domains/issue/service"
	reviewRepository "myfunzone/internal/domains/review/repository"
	reviewService "myfunzone/internal/domains/review/service"
	slotRepository "myfunzone/internal/domains/slot/repository"
	slotService "myfunzone/internal/domains/slot/service"
	"myfunzone/shared/cache"
)

// provideSlotService narrows the booking repository to the slice the slot
// service depends on.
func provideSlotService(
	repo slotRepository.Slot,
	gameRepo gameRepository.Game,
	bookingRepo bookingRepository.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) slotService.Slot {
	return slotService.New(repo, gameRepo, bookingRepo, cfg, cache, otel)
}

// provideReviewService narrows the booking and game repositories to the
// slices the review service depends on.
func provideReviewService(
	repo reviewRepository.Review,
	bookingRepo bookingRepository.Booking,
	gameRepo gameRepository.Game,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) reviewService.Review {
	return reviewService.New(repo, bookingRepo, gameRepo, cfg, cache, otel)
}

// provideIssueService narrows the game repository to the slice the issue
// service depends on.
func provideIssueService(
	repo issueRepository.Issue,
	gameRepo gameRepository.Game,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) issueService.Issue {
	return issueService.New(repo, gameRepo, cfg, cache, otel)
}
