package announcement

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"myfunzone/infras/otel"
	"myfunzone/internal/domains/announcement/model/dto"
	"myfunzone/internal/domains/announcement/service"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/validator"
	"myfunzone/transport/http/response"
)

type Handler struct {
	service service.Announcement
	otel    otel.Otel
}

func New(service service.Announcement, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/announcements", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAnnouncement)
		routerGroup.Get("/", handler.GetAnnouncements)
		routerGroup.Patch("/{id}", handler.UpdateAnnouncement)
		routerGroup.Delete("/{id}", handler.DeleteAnnouncement)
		routerGroup.Post("/{id}/read", handler.MarkRead)
		routerGroup.Get("/{id}/reads", handler.GetReadStats)
	})
}

// CreateAnnouncement publishes a new announcement.
// @Summary Create an announcement
// @Description Publish an announcement targeted at a role or at everyone.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param request body dto.CreateAnnouncementRequest true "Create Announcement Request"
// @Success 201 {object} response.Message "Announcement created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements [post]
// @Security BearerAuth
func (handler *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAnnouncement")
	defer scope.End()

	req := dto.CreateAnnouncementRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create announcement")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcement created successfully")

	response.WithMessage(w, http.StatusCreated, "Announcement created successfully")
}

// GetAnnouncements lists the announcements visible to the caller.
// @Summary Get announcements
// @Description Retrieve active, unexpired announcements targeted at the caller's role, pinned ones first.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetAnnouncementsResponse] "List of announcements"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements [get]
// @Security BearerAuth
func (handler *Handler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnnouncements")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	announcements, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get announcements")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcements retrieved successfully")

	response.WithJSON(w, http.StatusOK, announcements)
}

// UpdateAnnouncement updates an existing announcement by its ID.
// @Summary Update an announcement by ID
// @Description Update the details of an existing announcement.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param request body dto.UpdateAnnouncementRequest true "Update Announcement Request"
// @Success 200 {object} response.Message "Announcement updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAnnouncement")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAnnouncementRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update announcement")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcement updated successfully")

	response.WithMessage(w, http.StatusOK, "Announcement updated successfully")
}

// DeleteAnnouncement deletes an announcement by its ID.
// @Summary Delete an announcement by ID
// @Description Delete an announcement using its unique identifier.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Message "Announcement deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAnnouncement")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete announcement")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcement deleted successfully")

	response.WithMessage(w, http.StatusOK, "Announcement deleted successfully")
}

// MarkRead records that the caller read an announcement.
// @Summary Mark an announcement as read
// @Description Record that the caller opened the announcement. Reading twice is a no-op.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Message "Announcement marked as read"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements/{id}/read [post]
// @Security BearerAuth
func (handler *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRead")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkRead(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark announcement as read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcement marked as read")

	response.WithMessage(w, http.StatusOK, "Announcement marked as read")
}

// GetReadStats lists who has and has not read an announcement.
// @Summary Get an announcement's read stats
// @Description Retrieve the users who read the announcement and the targeted users who have not.
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Data[dto.ReadStatsResponse] "Read stats"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/announcements/{id}/reads [get]
// @Security BearerAuth
func (handler *Handler) GetReadStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReadStats")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	stats, err := handler.service.ReadStats(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get read stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Read stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}
