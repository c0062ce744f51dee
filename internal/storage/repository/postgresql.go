// Package repository реализует хранилище данных на основе PostgreSQL
// для управления учетными записями, специалистами, записями на прием
// и сессиями. Сериализация конкурирующих бронирований полностью
// делегирована транзакционным гарантиям базы: блокировке строки
// специалиста и частичному уникальному индексу по неотмененным записям.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки уровня хранилища. Конфликты бронирования и отсутствие записей —
// ожидаемые исходы, вызывающая сторона различает их по этим значениям.
var (
	// ErrNotFound возвращается, когда запрошенная запись отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrSlotTaken возвращается, когда слот уже занят неотмененной записью.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrProviderUnavailable возвращается, когда специалист не существует
	// или не принимает записи.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrNotOwner возвращается при попытке отменить чужую запись.
	ErrNotOwner = errors.New("appointment belongs to another user")
	// ErrAlreadyCancelled возвращается при повторной отмене записи.
	ErrAlreadyCancelled = errors.New("appointment already cancelled")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, специалистами,
// записями на прием и сессиями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// isUniqueViolation сообщает, вызвана ли ошибка нарушением уникального
// индекса. Нарушение частичного индекса по неотмененным записям на этапе
// коммита — ожидаемый исход оптимистичной конкуренции, а не сбой.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
