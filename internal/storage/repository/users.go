package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
)

const userColumns = `uid, name, email, password_hash, verified, login_attempts,
			      lock_until, is_logged_in, is_expired, expires_at, role, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var lockUntil, expiresAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Verified,
		&u.LoginAttempts, &lockUntil, &u.IsLoggedIn, &u.IsExpired, &expiresAt,
		&u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	if lockUntil.Valid {
		u.LockUntil = &lockUntil.Time
	}
	if expiresAt.Valid {
		u.ExpiresAt = &expiresAt.Time
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpsertPendingUser сохраняет неподтвержденную учетную запись.
// Существующая неподтвержденная запись с тем же email перезаписывается:
// имя, хэш пароля обновляются, флаг verified сбрасывается.
// Подтвержденные записи сюда не попадают, это проверяет бизнес-логика.
func (s *Storage) UpsertPendingUser(ctx context.Context, name, email, passwordHash string) (string, error) {
	const op = "storage.UpsertPendingUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var uid string
	query := `INSERT INTO users (name, email, password_hash, verified)
			  VALUES ($1, $2, $3, false)
			  ON CONFLICT (email) DO UPDATE
			  SET name = EXCLUDED.name,
			      password_hash = EXCLUDED.password_hash,
			      verified = false
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query, name, email, passwordHash).Scan(&uid); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// MarkVerified помечает учетную запись как подтвержденную.
func (s *Storage) MarkVerified(ctx context.Context, email string) error {
	const op = "storage.MarkVerified"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET verified = true WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// RegisterFailedLogin увеличивает счетчик неудачных входов одним условным
// обновлением. Когда новый счетчик достигает maxAttempts, одновременно
// выставляется lock_until. Возвращает новое значение счетчика.
func (s *Storage) RegisterFailedLogin(ctx context.Context, userUID string, maxAttempts int, lockUntil time.Time) (int, error) {
	const op = "storage.RegisterFailedLogin"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var attempts int
	query := `UPDATE users
			  SET login_attempts = login_attempts + 1,
			      lock_until = CASE
			          WHEN login_attempts + 1 >= $2 THEN $3::timestamptz
			          ELSE lock_until
			      END
			  WHERE uid = $1
			  RETURNING login_attempts`
	if err := s.DB.QueryRowContext(ctx, query, userUID, maxAttempts, lockUntil).Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return attempts, nil
}

// ResetLoginState сбрасывает счетчик неудачных входов и блокировку после
// успешного входа и выставляет справочный флаг активной сессии.
func (s *Storage) ResetLoginState(ctx context.Context, userUID string) error {
	const op = "storage.ResetLoginState"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`UPDATE users
		 SET login_attempts = 0, lock_until = NULL, is_logged_in = true
		 WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetLoggedIn выставляет справочный флаг активной сессии.
func (s *Storage) SetLoggedIn(ctx context.Context, userUID string, loggedIn bool) error {
	const op = "storage.SetLoggedIn"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`UPDATE users SET is_logged_in = $2 WHERE uid = $1`, userUID, loggedIn)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetSuspension приостанавливает учетную запись до expiresAt.
func (s *Storage) SetSuspension(ctx context.Context, userUID string, expiresAt time.Time) error {
	const op = "storage.SetSuspension"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET is_expired = true, expires_at = $2 WHERE uid = $1`,
		userUID, expiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ClearSuspension безусловно снимает приостановку учетной записи.
func (s *Storage) ClearSuspension(ctx context.Context, userUID string) error {
	const op = "storage.ClearSuspension"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET is_expired = false, expires_at = NULL WHERE uid = $1`,
		userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdatePassword сохраняет новый хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE email = $1`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CountUsers возвращает количество подтвержденных пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE verified`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
