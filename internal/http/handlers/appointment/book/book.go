// Package book реализует HTTP-обработчик бронирования слота у специалиста.
//
// Дата и время валидируются до обращения к сервису; занятый слот и
// недоступный специалист отображаются в HTTP 409 с различимыми сообщениями.
package book

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/appointment-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/response"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/slotkey"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы бронирования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирования.
type Service interface {
	Book(ctx context.Context, userUID string, req models.DummyBookRequest) (*models.Appointment, error)
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
// @Summary Бронирование слота
// @Description Бронирует слот у специалиста. Среди неотмененных записей пара (специалист, дата, время) уникальна: параллельные запросы на один слот получают ровно одно подтверждение.
// @Tags Appointments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyBookRequest true "Специалист, дата и время слота"
// @Success 200 {object} map[string]any "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 401 {object} response.ErrorResponse "Нет действующей сессии"
// @Failure 409 {object} response.ErrorResponse "Слот занят или специалист недоступен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /appointments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.appointment.book"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || userUID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	}

	var req models.DummyBookRequest
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

	appointment, err := h.service.Book(r.Context(), userUID, req)
	switch {
	case errors.Is(err, slotkey.ErrInvalidDate):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid slot date, expected day_month_year"))
		return
	case errors.Is(err, repository.ErrSlotTaken):
		log.Info("slot already taken",
			slog.String("provider_uid", req.ProviderUID),
			slog.String("slot_date", req.SlotDate))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("slot is already booked"))
		return
	case errors.Is(err, repository.ErrProviderUnavailable):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("provider is not available"))
		return
	case errors.Is(err, repository.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("provider does not exist"))
		return
	case err != nil:
		log.Error("failed to book appointment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("appointment booked", slog.Int("id", appointment.ID))
	render.JSON(w, r, response.StatusOKWithData(appointment))
}
