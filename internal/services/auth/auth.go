package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/appointment-scheduler/internal/cache"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/otp"
	"github.com/magabrotheeeer/appointment-scheduler/internal/lib/password"
	"github.com/magabrotheeeer/appointment-scheduler/internal/metrics"
	"github.com/magabrotheeeer/appointment-scheduler/internal/models"
	"github.com/magabrotheeeer/appointment-scheduler/internal/storage/repository"
)

// UserRepository описывает контракт для работы с учетными записями в базе данных.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertPendingUser(ctx context.Context, name, email, passwordHash string) (string, error)
	MarkVerified(ctx context.Context, email string) error
	RegisterFailedLogin(ctx context.Context, userUID string, maxAttempts int, lockUntil time.Time) (int, error)
	ResetLoginState(ctx context.Context, userUID string) error
	SetLoggedIn(ctx context.Context, userUID string, loggedIn bool) error
	ClearSuspension(ctx context.Context, userUID string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// SessionRepository описывает контракт для работы с сессиями.
type SessionRepository interface {
	ReplaceSession(ctx context.Context, userUID, token string, expiresAt time.Time) error
	HasValidSession(ctx context.Context, userUID string) (bool, error)
	DeleteSessionByToken(ctx context.Context, token string) error
}

// OTPStore описывает транзитное хранилище одноразовых кодов с TTL.
type OTPStore interface {
	SetOTP(ctx context.Context, purpose cache.Purpose, email, code string, ttl time.Duration) error
	GetOTP(ctx context.Context, purpose cache.Purpose, email string) (string, bool, error)
	ClearOTP(ctx context.Context, purpose cache.Purpose, email string) error
}

// MailSender внешний коллаборатор доставки писем с кодом подтверждения.
type MailSender interface {
	SendOTPEmail(to, code string) error
}

// Policy пороги блокировки и времена жизни, задаваемые конфигом.
type Policy struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
	OTPTTL           time.Duration
}

// AuthService отвечает за регистрацию, вход, выход и сброс пароля.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	otps     OTPStore
	mail     MailSender
	jwtMaker jwt.Maker
	tokenTTL time.Duration
	policy   Policy
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionRepository, otps OTPStore,
	mail MailSender, jwtMaker jwt.Maker, tokenTTL time.Duration, policy Policy) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		otps:     otps,
		mail:     mail,
		jwtMaker: jwtMaker,
		tokenTTL: tokenTTL,
		policy:   policy,
	}
}

// Login выполняет машину состояний входа в фиксированном порядке,
// останавливаясь на первом применимом отказе:
// существование учетной записи, подтверждение почты, приостановка,
// уже открытая сессия, блокировка за перебор, проверка пароля.
// Каждый исход применяется одним условным обновлением, половинчатых
// состояний не остается.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Login"
	now := time.Now()

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", &AuthError{Kind: FailNoSuchAccount}
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !user.Verified {
		return "", &AuthError{Kind: FailNotVerified}
	}

	if user.ExpiresAt != nil {
		if now.Before(*user.ExpiresAt) {
			return "", &AuthError{
				Kind:      FailSuspended,
				TimeLeft:  user.ExpiresAt.Sub(now),
				ExpiresAt: user.ExpiresAt,
			}
		}
		// Период приостановки истек, флаги снимаются до продолжения входа.
		if err = s.users.ClearSuspension(ctx, user.UID); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if user.IsLoggedIn {
		hasSession, err := s.sessions.HasValidSession(ctx, user.UID)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if hasSession {
			return "", &AuthError{Kind: FailAlreadyLoggedIn}
		}
		// Устаревший флаг без действующей сессии снимается, вход продолжается.
		if err = s.users.SetLoggedIn(ctx, user.UID, false); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if user.LockUntil != nil && now.Before(*user.LockUntil) {
		return "", &AuthError{
			Kind:     FailLocked,
			TimeLeft: user.LockUntil.Sub(now),
		}
	}

	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		metrics.LoginFailuresTotal.Inc()
		attempts, err := s.users.RegisterFailedLogin(ctx, user.UID,
			s.policy.MaxLoginAttempts, now.Add(s.policy.LockDuration))
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if attempts >= s.policy.MaxLoginAttempts {
			metrics.LockoutsTotal.Inc()
			return "", &AuthError{
				Kind:     FailLockedJustNow,
				TimeLeft: s.policy.LockDuration,
			}
		}
		return "", &AuthError{
			Kind:         FailInvalidCredentials,
			AttemptsLeft: s.policy.MaxLoginAttempts - attempts,
		}
	}

	return s.openSession(ctx, user)
}

// openSession сбрасывает счетчики входа и выдает свежую единственную сессию.
// Замена сессии идет через удаление всех прежних, поэтому инвариант
// единственной сессии держится даже при гонке с проверкой выше.
func (s *AuthService) openSession(ctx context.Context, user *models.User) (string, error) {
	const op = "auth.openSession"

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = s.sessions.ReplaceSession(ctx, user.UID, token, time.Now().Add(s.tokenTTL)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = s.users.ResetLoginState(ctx, user.UID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Logout удаляет сессию по токену и снимает справочный флаг входа.
func (s *AuthService) Logout(ctx context.Context, userUID, token string) error {
	const op = "auth.Logout"
	if err := s.sessions.DeleteSessionByToken(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.SetLoggedIn(ctx, userUID, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SendRegistrationOTP сохраняет неподтвержденную учетную запись с хэшем
// пароля и отправляет код подтверждения на почту. Попытка занять уже
// подтвержденную почту отклоняется. Неудачная доставка письма сообщается
// вызывающему, подтвержденного состояния после нее не остается.
func (s *AuthService) SendRegistrationOTP(ctx context.Context, name, email, rawPassword string) error {
	const op = "auth.SendRegistrationOTP"

	if !password.IsStrong(rawPassword) {
		return ErrWeakPassword
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil && existing.Verified {
		return ErrEmailTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = s.users.UpsertPendingUser(ctx, name, email, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.sendOTP(ctx, cache.PurposeRegistration, email)
}

// VerifyRegistrationOTP проверяет код, помечает учетную запись
// подтвержденной и сразу открывает сессию (автовход). Неверный код не
// изымает сохраненный: после опечатки верный код все еще принимается.
// Совпавший код изымается и повторно использован быть не может.
func (s *AuthService) VerifyRegistrationOTP(ctx context.Context, email, code string) (string, error) {
	const op = "auth.VerifyRegistrationOTP"

	stored, found, err := s.otps.GetOTP(ctx, cache.PurposeRegistration, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !found || stored != code {
		return "", &AuthError{Kind: FailInvalidOTP}
	}
	if err = s.otps.ClearOTP(ctx, cache.PurposeRegistration, email); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = s.users.MarkVerified(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", &AuthError{Kind: FailNoSuchAccount}
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.openSession(ctx, user)
}

// SendPasswordResetOTP отправляет код сброса пароля владельцу учетной записи.
func (s *AuthService) SendPasswordResetOTP(ctx context.Context, email string) error {
	const op = "auth.SendPasswordResetOTP"

	if _, err := s.users.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &AuthError{Kind: FailNoSuchAccount}
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.sendOTP(ctx, cache.PurposeReset, email)
}

// ResetPassword проверяет код сброса и сохраняет новый хэш пароля.
// Ни слабый пароль, ни неверный код не сжигают сохраненный код: изъятие
// происходит только при совпадении, после чего повторное использование
// невозможно.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	const op = "auth.ResetPassword"

	if !password.IsStrong(newPassword) {
		return ErrWeakPassword
	}

	stored, found, err := s.otps.GetOTP(ctx, cache.PurposeReset, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found || stored != code {
		return &AuthError{Kind: FailInvalidOTP}
	}
	if err = s.otps.ClearOTP(ctx, cache.PurposeReset, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.users.UpdatePassword(ctx, email, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &AuthError{Kind: FailNoSuchAccount}
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *AuthService) sendOTP(ctx context.Context, purpose cache.Purpose, email string) error {
	const op = "auth.sendOTP"

	code, err := otp.Generate()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.otps.SetOTP(ctx, purpose, email, code, s.policy.OTPTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.mail.SendOTPEmail(email, code); err != nil {
		// Непредъявляемый код вычищается сразу, не дожидаясь TTL.
		_ = s.otps.ClearOTP(ctx, purpose, email)
		return fmt.Errorf("%s: %w: %w", op, ErrMailDelivery, err)
	}
	return nil
}
