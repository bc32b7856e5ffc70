package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"myfunzone/infras/otel"
	"myfunzone/internal/domains/game/model"
	"myfunzone/internal/domains/game/model/dto"
	"myfunzone/internal/domains/game/service"
	"myfunzone/shared"
	"myfunzone/shared/constant"
	gDto "myfunzone/shared/dto"
	"myfunzone/shared/validator"
	"myfunzone/transport/http/response"
)

type Handler struct {
	service service.Game
	otel    otel.Otel
}

func New(service service.Game, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/games", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGame)
		routerGroup.Get("/", handler.GetGames)
		routerGroup.Get("/{id}", handler.GetGameByID)
		routerGroup.Patch("/{id}", handler.UpdateGame)
		routerGroup.Delete("/{id}", handler.DeleteGame)
	})
}

func parseGameForm(r *http.Request) (dto.CreateGameRequest, error) {
	req := dto.CreateGameRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	if priceStr := r.FormValue("price"); priceStr != "" {
		if err := validator.ValidateVar(priceStr, "numeric"); err != nil {
			return req, err // nolint:wrapcheck
		}

		req.Price = shared.ConvertStringToFloat(priceStr)
	}

	if playersStr := r.FormValue("max_players"); playersStr != "" {
		if players, err := shared.ConvertStringToInt(playersStr); err == nil {
			req.MaxPlayers = players
		}
	}

	if durationStr := r.FormValue("duration_minutes"); durationStr != "" {
		if duration, err := shared.ConvertStringToInt(durationStr); err == nil {
			req.DurationMinutes = duration
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	return req, nil
}

// CreateGame handles the creation of a new game.
// @Summary Create a new game
// @Description Create a new game with the provided details.
// @Tags Game
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Game name"
// @Param description formData string false "Game description"
// @Param category formData string false "Game category"
// @Param price formData number false "Price per player"
// @Param max_players formData integer true "Maximum players per slot"
// @Param duration_minutes formData integer false "Session duration in minutes"
// @Param active formData boolean false "Game active status"
// @Param image formData file false "Game image"
// @Success 201 {object} response.Message "Game created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/games [post]
// @Security BearerAuth
func (handler *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGame")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req, err := parseGameForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse game form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create game")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Game created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Game created successfully")
}

// GetGames retrieves all games based on query parameters.
// @Summary Get all games
// @Description Retrieve all games with optional filtering and pagination.
// @Tags Game
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetGamesResponse] "List of games"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/games [get]
func (handler *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGames")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCategory,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldCategory),
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	games, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get games")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Games retrieved successfully")

	response.WithJSON(w, http.StatusOK, games)
}

// GetGameByID retrieves a game by its ID.
// @Summary Get a game by ID
// @Description Retrieve a game by its unique identifier.
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} response.Data[dto.GameResponse] "Game details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/games/{id} [get]
func (handler *Handler) GetGameByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGameByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	game, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get game by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Game retrieved successfully")

	response.WithJSON(w, http.StatusOK, game)
}

// UpdateGame updates an existing game by its ID.
// @Summary Update a game by ID
// @Description Update the details of an existing game.
// @Tags Game
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Game ID"
// @Param name formData string false "Game name"
// @Param description formData string false "Game description"
// @Param category formData string false "Game category"
// @Param price formData number false "Price per player"
// @Param max_players formData integer false "Maximum players per slot"
// @Param duration_minutes formData integer false "Session duration in minutes"
// @Param active formData boolean false "Game active status"
// @Param image formData file false "Game image"
// @Success 200 {object} response.Message "Game updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/games/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGame")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateGameRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	if priceStr := r.FormValue("price"); priceStr != "" {
		price := shared.ConvertStringToFloat(priceStr)
		req.Price = &price
	}

	if playersStr := r.FormValue("max_players"); playersStr != "" {
		if players, err := shared.ConvertStringToInt(playersStr); err == nil {
			req.MaxPlayers = &players
		}
	}

	if durationStr := r.FormValue("duration_minutes"); durationStr != "" {
		if duration, err := shared.ConvertStringToInt(durationStr); err == nil {
			req.DurationMinutes = &duration
		}
	}

	if activeStr := r.FormValue("active"); activeStr != "" {
		req.Active = shared.ConvertStringToBool(activeStr)
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update game")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Game updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Game updated successfully")
}

// DeleteGame deletes a game by its ID.
// @Summary Delete a game by ID
// @Description Delete a game using its unique identifier.
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} response.Message "Game deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/games/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGame")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete game")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Game deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Game deleted successfully")
}
