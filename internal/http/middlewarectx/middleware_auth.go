// Package middlewarectx содержит HTTP middleware для проверки сессий.
//
// SessionMiddleware проверяет JWT токен из заголовка Authorization и
// наличие действующей строки сессии: токен без строки означает, что вход
// был выполнен с другого устройства, просроченная строка удаляется на месте.
// В случае успеха в контекст запроса добавляются идентификатор пользователя
// и роль для дальнейшего использования в обработчиках.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/magabrotheeeer/appointment-scheduler/internal/http/response"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для идентификатора пользователя в контексте
	User Key = "user_uid"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// Token — ключ для токена текущей сессии в контексте
	Token Key = "token"
)

// SessionStore описывает доступ к строкам сессий для middleware.
type SessionStore interface {
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) error
}

// SessionMiddleware возвращает HTTP middleware, который проверяет JWT и
// действующую сессию. Подпись и срок токена проверяет jwt.Maker, строку
// сессии — хранилище: токен законен, но строки нет — сессию вытеснил вход
// с другого устройства.
func SessionMiddleware(maker jwt.Maker, sessions SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				sl.Op(op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			session, err := sessions.GetSessionByToken(r.Context(), tokenStr)
			if errors.Is(err, repository.ErrNotFound) {
				log.Info("session replaced by another login", slog.String("user_uid", claims.UserUID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session is no longer active: logged in from another device"))
				return
			}
			if err != nil {
				log.Error("failed to load session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if session.Expired(time.Now()) {
				if err := sessions.DeleteSessionByToken(r.Context(), tokenStr); err != nil {
					log.Error("failed to delete expired session", sl.Err(err))
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session has expired, please log in again"))
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.UserUID)
			ctx = context.WithValue(ctx, Role, claims.Role)
			ctx = context.WithValue(ctx, Token, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
