package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
)

// ReplaceSession удаляет все сессии пользователя и вставляет новую одной
// транзакцией. Так инвариант одной действующей сессии на пользователя
// сохраняется даже при гонке двух одновременных входов.
func (s *Storage) ReplaceSession(ctx context.Context, userUID, token string, expiresAt time.Time) error {
	const op = "storage.ReplaceSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_uid = $1`, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (user_uid, token, expires_at) VALUES ($1, $2, $3)`,
		userUID, token, expiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSessionByToken возвращает сессию по токену.
func (s *Storage) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	const op = "storage.GetSessionByToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	sess := &models.Session{}
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, user_uid, token, expires_at FROM sessions WHERE token = $1`,
		token).Scan(&sess.ID, &sess.UserUID, &sess.Token, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// HasValidSession сообщает, существует ли у пользователя действующая
// (неистекшая) сессия.
func (s *Storage) HasValidSession(ctx context.Context, userUID string) (bool, error) {
	const op = "storage.HasValidSession"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM sessions WHERE user_uid = $1 AND expires_at > now()
		 )`, userUID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// DeleteSessionByToken удаляет сессию по токену.
func (s *Storage) DeleteSessionByToken(ctx context.Context, token string) error {
	const op = "storage.DeleteSessionByToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteSessionsForUser удаляет все сессии пользователя.
func (s *Storage) DeleteSessionsForUser(ctx context.Context, userUID string) error {
	const op = "storage.DeleteSessionsForUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteExpiredSessions удаляет истекшие сессии. Срок жизни сессии
// проверяется на каждом аутентифицированном запросе, фоновая чистка —
// вторая линия защиты, чтобы записи не копились.
func (s *Storage) DeleteExpiredSessions(ctx context.Context) (int, error) {
	const op = "storage.DeleteExpiredSessions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}
