package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Purpose назначение одноразового кода: ключи регистрации и сброса пароля
// независимы, код одного назначения не подходит для другого.
type Purpose string

const (
	// PurposeRegistration код подтверждения регистрации.
	PurposeRegistration Purpose = "registration"
	// PurposeReset код сброса пароля.
	PurposeReset Purpose = "reset"
)

func otpKey(purpose Purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

// SetOTP сохраняет одноразовый код для email с заданным временем жизни.
// Повторная отправка перезаписывает предыдущий код.
func (c *Cache) SetOTP(ctx context.Context, purpose Purpose, email, code string, ttl time.Duration) error {
	const op = "cache.SetOTP"
	if err := c.Db.Set(ctx, otpKey(purpose, email), code, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetOTP читает код, не изымая его: неверная попытка предъявления не
// сжигает код, пользователь может повторить ввод до истечения TTL.
// Изъятие после успешного сравнения выполняет ClearOTP.
// Возвращает false, если код отсутствует или истек.
func (c *Cache) GetOTP(ctx context.Context, purpose Purpose, email string) (string, bool, error) {
	const op = "cache.GetOTP"
	val, err := c.Db.Get(ctx, otpKey(purpose, email)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// ClearOTP удаляет код: после успешного предъявления или когда
// неотправленное письмо делает код непредъявляемым.
func (c *Cache) ClearOTP(ctx context.Context, purpose Purpose, email string) error {
	const op = "cache.ClearOTP"
	if err := c.Db.Del(ctx, otpKey(purpose, email)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
