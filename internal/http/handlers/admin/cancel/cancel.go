// Package cancel реализует HTTP-обработчик отмены любой записи
// администратором: проверка владения не выполняется, освобождение слота
// идет тем же транзакционным путем, что и у владельца.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/appointment-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/response"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы административной отмены.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены.
type Service interface {
	Cancel(ctx context.Context, userUID string, appointmentID int, asAdmin bool) (*models.Appointment, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отмена любой записи
// @Description Отменяет запись любого пользователя и освобождает слот в той же транзакции.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param id path int true "Идентификатор записи"
// @Success 200 {object} map[string]any "Запись отменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Запись не существует"
// @Failure 409 {object} response.ErrorResponse "Запись уже отменена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/appointments/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.cancel"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminUID, _ := r.Context().Value(middlewarectx.User).(string)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid appointment id"))
		return
	}

	appointment, err := h.service.Cancel(r.Context(), adminUID, id, true)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("appointment does not exist"))
		return
	case errors.Is(err, repository.ErrAlreadyCancelled):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("appointment is already cancelled"))
		return
	case err != nil:
		log.Error("failed to cancel appointment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("appointment cancelled by admin", slog.Int("id", appointment.ID))
	render.JSON(w, r, response.StatusOKWithData(appointment))
}
