// Package login реализует HTTP-обработчик для входа пользователей.
//
// В нём определяется структура Request для входных данных, выполняется
// декодирование JSON, валидация полей и делегирование входа сервису
// аутентификации. Каждый исход отказа отображается в собственный HTTP-статус
// и несет структурные детали: оставшиеся попытки или оставшееся время.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/appointment-scheduler/internal/http/response"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	services "github.com/magabrotheeeer/appointment-scheduler/internal/services/auth"
)

// Request — структура входных данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
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
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя по почте и паролю. Возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Почта не подтверждена или учетная запись приостановлена"
// @Failure 404 {object} response.ErrorResponse "Учетная запись не существует"
// @Failure 409 {object} response.ErrorResponse "Уже выполнен вход с другого устройства"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 423 {object} response.ErrorResponse "Учетная запись заблокирована"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if authErr, ok := services.AsAuthError(err); ok {
			log.Info("login rejected", slog.String("reason", authErr.Kind.String()))
			w.WriteHeader(failureStatus(authErr.Kind))
			render.JSON(w, r, failureBody(authErr))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
	}))
}

func failureStatus(kind services.FailureKind) int {
	switch kind {
	case services.FailNoSuchAccount:
		return http.StatusNotFound
	case services.FailNotVerified, services.FailSuspended:
		return http.StatusForbidden
	case services.FailAlreadyLoggedIn:
		return http.StatusConflict
	case services.FailLocked, services.FailLockedJustNow:
		return http.StatusLocked
	default:
		return http.StatusUnauthorized
	}
}

func failureBody(authErr *services.AuthError) response.Response {
	details := map[string]any{}
	if authErr.Kind == services.FailInvalidCredentials {
		details["attempts_left"] = authErr.AttemptsLeft
	}
	if authErr.TimeLeft > 0 {
		details["minutes_left"] = int(authErr.TimeLeft.Round(time.Minute) / time.Minute)
	}
	if authErr.ExpiresAt != nil {
		details["expires_at"] = authErr.ExpiresAt
	}
	resp := response.Response{
		Status: response.StatusError,
		Error:  authErr.Kind.String(),
	}
	if len(details) > 0 {
		resp.Data = details
	}
	return resp
}
