// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, счетчики неудачных входов
// и административные поля приостановки. Структура используется
// в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет учетную запись пользователя системы.
type User struct {
	UID           string     // Уникальный идентификатор пользователя
	Name          string     // Отображаемое имя
	Email         string     // Электронная почта (уникальная)
	PasswordHash  string     // Хэш пароля пользователя
	Verified      bool       // Подтверждена ли почта кодом
	LoginAttempts int        // Подряд идущие неудачные попытки входа
	LockUntil     *time.Time // Конец автоматической блокировки, nil если блокировки нет
	IsLoggedIn    bool       // Справочный флаг активной сессии
	IsExpired     bool       // Приостановлена ли учетная запись администратором
	ExpiresAt     *time.Time // Конец периода приостановки, nil если приостановки нет
	Role          string     // Роль пользователя, admin или user
	CreatedAt     time.Time  // Дата создания записи
}

// UserSnapshot неизменяемая копия отображаемых данных пользователя,
// встраиваемая в запись о записи на прием в момент ее создания.
// Последующие изменения учетной записи на копию не влияют.
type UserSnapshot struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Snapshot строит неизменяемую копию отображаемых данных пользователя.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		UID:   u.UID,
		Name:  u.Name,
		Email: u.Email,
	}
}
