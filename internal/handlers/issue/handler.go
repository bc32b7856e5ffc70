package issue

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"myfunzone/infras/otel"
	"myfunzone/internal/domains/issue/model"
	"myfunzone/internal/domains/issue/model/dto"
	"myfunzone/internal/domains/issue/service"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/validator"
	"myfunzone/transport/http/response"
)

type Handler struct {
	service service.Issue
	otel    otel.Otel
}

func New(service service.Issue, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/issues", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateIssue)
		routerGroup.Get("/", handler.GetIssues)
		routerGroup.Get("/me", handler.GetMyIssues)
		routerGroup.Patch("/{id}/status", handler.UpdateIssueStatus)
	})
}

// CreateIssue files a new issue report.
// @Summary Report an issue
// @Description File an issue report against a game.
// @Tags Issue
// @Accept json
// @Produce json
// @Param request body dto.CreateIssueRequest true "Create Issue Request"
// @Success 201 {object} response.Message "Issue reported successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/issues [post]
// @Security BearerAuth
func (handler *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateIssue")
	defer scope.End()

	req := dto.CreateIssueRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create issue report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Issue reported successfully")

	response.WithMessage(w, http.StatusCreated, "Issue reported successfully")
}

// GetIssues retrieves all issue reports based on query parameters.
// @Summary Get all issue reports
// @Description Retrieve all issue reports with optional filtering and pagination.
// @Tags Issue
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param game_id query string false "Filter by game"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetIssuesResponse] "List of issue reports"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/issues [get]
// @Security BearerAuth
func (handler *Handler) GetIssues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetIssues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if gameID := r.URL.Query().Get(model.FieldGameID); gameID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldGameID,
			Operator: gDto.FilterOperatorEq,
			Value:    gameID,
			Table:    model.TableName,
		})
	}

	if category := r.URL.Query().Get(model.FieldCategory); category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorLike,
			Value:    category,
			Table:    model.TableName,
		})
	}

	issues, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get issue reports")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Issue reports retrieved successfully")

	response.WithJSON(w, http.StatusOK, issues)
}

// GetMyIssues retrieves the authenticated user's issue reports.
// @Summary Get my issue reports
// @Description Retrieve the issue reports filed by the authenticated user.
// @Tags Issue
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetIssuesResponse] "List of issue reports"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/issues/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyIssues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyIssues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	issues, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get issue reports")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Issue reports retrieved successfully")

	response.WithJSON(w, http.StatusOK, issues)
}

// UpdateIssueStatus moves an issue report one step forward.
// @Summary Update an issue's status
// @Description Move an issue report from open to in_progress or from in_progress to resolved.
// @Tags Issue
// @Accept json
// @Produce json
// @Param id path string true "Issue ID"
// @Param request body dto.UpdateIssueStatusRequest true "Update Issue Status Request"
// @Success 200 {object} response.Message "Issue status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/issues/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateIssueStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateIssueStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateIssueStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update issue status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Issue status updated successfully")

	response.WithMessage(w, http.StatusOK, "Issue status updated successfully")
}
