// Package addprovider реализует HTTP-обработчик создания специалиста
// администратором.
package addprovider

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/appointment-scheduler/internal/http/response"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
)

// Request — структура входных данных для создания специалиста.
type Request struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Specialty string `json:"specialty" validate:"required,min=2,max=100"`
	About     string `json:"about" validate:"max=2000"`
	Fee       int    `json:"fee" validate:"required,gt=0"`
}

// Handler обрабатывает HTTP-запросы создания специалиста.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания специалиста.
type Service interface {
	AddProvider(ctx context.Context, p models.Provider) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание специалиста
// @Description Создает нового специалиста, по умолчанию доступного для записи.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные специалиста"
// @Success 200 {object} map[string]any "Специалист создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/providers [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.addprovider"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid, err := h.service.AddProvider(r.Context(), models.Provider{
		Name:      req.Name,
		Specialty: req.Specialty,
		About:     req.About,
		Fee:       req.Fee,
	})
	if err != nil {
		log.Error("failed to create provider", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("provider created", slog.String("provider_uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"provider_uid": uid,
	}))
}
