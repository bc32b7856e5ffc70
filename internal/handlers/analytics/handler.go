package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"myfunzone/infras/otel"
	"myfunzone/internal/domains/analytics/model/dto"
	"myfunzone/internal/domains/analytics/service"
	"myfunzone/shared/constant"
	"myfunzone/shared/validator"
	"myfunzone/transport/http/response"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Get("/cancellation-rate", handler.GetCancellationRate)
		routerGroup.Get("/active-users", handler.GetActiveUsers)
		routerGroup.Get("/peak-hours", handler.GetPeakHours)
	})
}

func rangeQueryFromRequest(r *http.Request) (dto.RangeQuery, error) {
	query := dto.RangeQuery{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}

	if err := validator.ValidateStruct(&query); err != nil {
		return query, err //nolint:wrapcheck
	}

	return query, nil
}

// GetRevenue reports revenue over a slot-date range.
// @Summary Get revenue
// @Description Retrieve total revenue and its per-date breakdown over an optional slot-date range.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param date_from query string false "Start of the range (YYYY-MM-DD)"
// @Param date_to query string false "End of the range (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RevenueResponse] "Revenue report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	query, err := rangeQueryFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	revenue, err := handler.service.GetRevenue(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue retrieved successfully")

	response.WithJSON(w, http.StatusOK, revenue)
}

// GetCancellationRate reports the share of cancelled bookings.
// @Summary Get cancellation rate
// @Description Retrieve the booking totals and the percentage of cancellations over an optional slot-date range.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param date_from query string false "Start of the range (YYYY-MM-DD)"
// @Param date_to query string false "End of the range (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.CancellationRateResponse] "Cancellation rate report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/cancellation-rate [get]
// @Security BearerAuth
func (handler *Handler) GetCancellationRate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCancellationRate")
	defer scope.End()

	query, err := rangeQueryFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	rate, err := handler.service.GetCancellationRate(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cancellation rate")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cancellation rate retrieved successfully")

	response.WithJSON(w, http.StatusOK, rate)
}

// GetActiveUsers reports how many distinct users booked in a range.
// @Summary Get active users
// @Description Retrieve the number of distinct users who made a booking over an optional slot-date range.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param date_from query string false "Start of the range (YYYY-MM-DD)"
// @Param date_to query string false "End of the range (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.ActiveUsersResponse] "Active users report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/active-users [get]
// @Security BearerAuth
func (handler *Handler) GetActiveUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveUsers")
	defer scope.End()

	query, err := rangeQueryFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	users, err := handler.service.GetActiveUsers(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active users")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Active users retrieved successfully")

	response.WithJSON(w, http.StatusOK, users)
}

// GetPeakHours reports booking volume per hour of day.
// @Summary Get peak hours
// @Description Retrieve booking counts grouped by slot start hour, busiest first, over an optional slot-date range.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param date_from query string false "Start of the range (YYYY-MM-DD)"
// @Param date_to query string false "End of the range (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.PeakHoursResponse] "Peak hours report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/peak-hours [get]
// @Security BearerAuth
func (handler *Handler) GetPeakHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPeakHours")
	defer scope.End()

	query, err := rangeQueryFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	hours, err := handler.service.GetPeakHours(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get peak hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Peak hours retrieved successfully")

	response.WithJSON(w, http.StatusOK, hours)
}
