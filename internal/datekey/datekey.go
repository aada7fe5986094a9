// Package datekey отвечает за канонический строковый ключ даты YYYY-MM-DD.
// Ключ строится из локальных календарных полей даты: использование UTC
// (например, time.Time.UTC().Format) сдвигает дату около полуночи в часовых
// поясах с ненулевым смещением и портит привязку брони к ячейке календаря.
package datekey

import (
	"fmt"
	"time"
)

// Format форматирует дату в ключ YYYY-MM-DD по локальным полям даты.
func Format(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// Parse разбирает ключ YYYY-MM-DD и возвращает локальную полночь этой даты.
// Несуществующие даты вроде "2025-02-31" отклоняются, а не нормализуются
// переносом на следующий месяц.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректный ключ даты %q: %w", key, err)
	}
	return t, nil
}
