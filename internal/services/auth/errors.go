// Package services содержит логику бизнес-уровня аутентификации:
// регистрацию с подтверждением кодом, машину состояний входа с блокировкой
// и приостановкой, принудительно единственную сессию и сброс пароля.
package services

import (
	"errors"
	"time"
)

// FailureKind перечисляет исходы неуспешной попытки аутентификации.
// Конфликт "выполнен вход с другого устройства" и блокировка за перебор
// пароля — независимые состояния, их нельзя смешивать в сообщениях.
type FailureKind int

const (
	// FailNoSuchAccount учетная запись не существует.
	FailNoSuchAccount FailureKind = iota
	// FailNotVerified почта не подтверждена кодом.
	FailNotVerified
	// FailSuspended учетная запись приостановлена администратором.
	FailSuspended
	// FailAlreadyLoggedIn у пользователя уже есть действующая сессия.
	FailAlreadyLoggedIn
	// FailLocked учетная запись заблокирована за перебор пароля.
	FailLocked
	// FailLockedJustNow блокировка сработала на этой попытке.
	FailLockedJustNow
	// FailInvalidCredentials пароль не подошел, блокировка еще не сработала.
	FailInvalidCredentials
	// FailInvalidOTP код подтверждения отсутствует, истек или не совпал.
	FailInvalidOTP
)

func (k FailureKind) String() string {
	switch k {
	case FailNoSuchAccount:
		return "account does not exist"
	case FailNotVerified:
		return "email is not verified"
	case FailSuspended:
		return "account is suspended"
	case FailAlreadyLoggedIn:
		return "account is already logged in on another device"
	case FailLocked:
		return "account is locked"
	case FailLockedJustNow:
		return "account locked due to too many failed attempts"
	case FailInvalidCredentials:
		return "invalid credentials"
	case FailInvalidOTP:
		return "invalid or expired otp"
	default:
		return "authentication failed"
	}
}

// AuthError ожидаемый исход неуспешной аутентификации. Несет структурные
// детали для ответа пользователю: оставшиеся попытки, оставшееся время
// блокировки или приостановки.
type AuthError struct {
	Kind         FailureKind
	AttemptsLeft int           // Для FailInvalidCredentials
	TimeLeft     time.Duration // Для FailLocked, FailLockedJustNow, FailSuspended
	ExpiresAt    *time.Time    // Для FailSuspended
}

func (e *AuthError) Error() string {
	return e.Kind.String()
}

// AsAuthError извлекает *AuthError из цепочки ошибок.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// ErrWeakPassword возвращается, когда пароль короче допустимого минимума.
var ErrWeakPassword = errors.New("password is too weak")

// ErrEmailTaken возвращается при регистрации на уже подтвержденную почту.
var ErrEmailTaken = errors.New("email already registered")

// ErrMailDelivery возвращается, когда письмо с кодом не удалось отправить.
var ErrMailDelivery = errors.New("failed to send otp email")
