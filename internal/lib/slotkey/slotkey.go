// Package slotkey содержит функции нормализации ключей слотов расписания.
//
// Дата слота хранится строкой в формате день_месяц_год (например "10_6_2025"),
// метка времени — свободной строкой ("10:00 AM"). Перед любым сравнением метка
// приводится к каноническому виду, чтобы лексические варианты одного и того же
// слота считались одинаковыми.
package slotkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDate возвращается, когда ключ даты не соответствует формату
// день_месяц_год.
var ErrInvalidDate = errors.New("invalid slot date")

// NormalizeTime приводит метку времени к каноническому виду:
// убирает крайние пробелы и приводит к нижнему регистру.
func NormalizeTime(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// SameTime сравнивает две метки времени без учета регистра и крайних пробелов.
func SameTime(a, b string) bool {
	return NormalizeTime(a) == NormalizeTime(b)
}

// ValidateDate проверяет, что ключ даты имеет форму день_месяц_год
// и все три части являются допустимыми числами.
func ValidateDate(dateKey string) error {
	const op = "slotkey.ValidateDate"
	parts := strings.Split(dateKey, "_")
	if len(parts) != 3 {
		return fmt.Errorf("%s: %q is not in day_month_year form: %w", op, dateKey, ErrInvalidDate)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return fmt.Errorf("%s: bad day in %q: %w", op, dateKey, ErrInvalidDate)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("%s: bad month in %q: %w", op, dateKey, ErrInvalidDate)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 1 {
		return fmt.Errorf("%s: bad year in %q: %w", op, dateKey, ErrInvalidDate)
	}
	return nil
}
