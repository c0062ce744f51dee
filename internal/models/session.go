package models

import "time"

// Session эфемерная запись активной сессии пользователя.
// Для каждого пользователя в любой момент допустима не более чем одна
// действующая (неистекшая) сессия; создается при входе, уничтожается
// при выходе или по истечении срока жизни.
type Session struct {
	ID        int       // Идентификатор записи
	UserUID   string    // Владелец сессии
	Token     string    // Непрозрачный токен сессии
	ExpiresAt time.Time // Момент истечения
}

// Expired сообщает, истекла ли сессия к моменту now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
