// Package suspend реализует HTTP-обработчик приостановки учетной записи
// администратором.
package suspend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/appointment-scheduler/internal/http/response"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	services "github.com/magabrotheeeer/appointment-scheduler/internal/services/admin"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы приостановки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приостановки.
type Service interface {
	Suspend(ctx context.Context, req models.DummySuspendRequest) (time.Time, error)
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
// @Summary Приостановка учетной записи
// @Description Приостанавливает учетную запись на заданную длительность и закрывает открытую сессию пользователя. Длительность должна быть ненулевой.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummySuspendRequest true "Пользователь и длительность"
// @Success 200 {object} map[string]any "Момент окончания приостановки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нулевая длительность"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users/suspend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.suspend"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySuspendRequest
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

	expiresAt, err := h.service.Suspend(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrZeroDuration):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("suspension duration must be non-zero"))
		return
	case errors.Is(err, repository.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user does not exist"))
		return
	case err != nil:
		log.Error("failed to suspend user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("user suspended", slog.String("user_uid", req.UserUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"expires_at": expiresAt,
	}))
}
