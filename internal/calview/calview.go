// Package calview строит набор дат для отображения календаря.
package calview

import (
	"fmt"
	"time"

	"calendar_scheduler/internal/datekey"
)

// View — режим отображения календаря.
type View string

const (
	Month    View = "month"
	Week     View = "week"
	ThreeDay View = "3day"
)

// Valid сообщает, известен ли режим отображения.
func (v View) Valid() bool {
	switch v {
	case Month, Week, ThreeDay:
		return true
	}
	return false
}

// Cell — одна ячейка календарной сетки.
type Cell struct {
	Date           time.Time `json:"-"`
	DateKey        string    `json:"date"`
	IsCurrentMonth bool      `json:"isCurrentMonth"` // Для месячной сетки: день принадлежит месяцу якорной даты
}

// Window возвращает упорядоченный набор ячеек для якорной даты и режима.
// Месяц — всегда 42 ячейки (6 недель по 7 дней): дни предыдущего месяца до
// первого числа, дни текущего месяца, затем дни следующего месяца до
// заполнения сетки. Неделя — 7 дней начиная с воскресенья на или перед
// якорной датой. 3 дня — 3 дня начиная с самой якорной даты.
func Window(view View, anchor time.Time) []Cell {
	switch view {
	case Month:
		return monthWindow(anchor)
	case Week:
		return runWindow(startOfWeek(anchor), 7, anchor)
	case ThreeDay:
		return runWindow(anchor, 3, anchor)
	}
	return nil
}

func monthWindow(anchor time.Time) []Cell {
	year, month := anchor.Year(), anchor.Month()

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local)

	// День недели первого числа (0 — воскресенье)
	startDayOfWeek := int(firstDay.Weekday())

	cells := make([]Cell, 0, 42)

	// Хвост предыдущего месяца
	for i := 0; i < startDayOfWeek; i++ {
		d := firstDay.AddDate(0, 0, -(startDayOfWeek - i))
		cells = append(cells, Cell{Date: d, DateKey: datekey.Format(d), IsCurrentMonth: false})
	}

	// Дни текущего месяца
	for i := 1; i <= lastDay.Day(); i++ {
		d := time.Date(year, month, i, 0, 0, 0, 0, time.Local)
		cells = append(cells, Cell{Date: d, DateKey: datekey.Format(d), IsCurrentMonth: true})
	}

	// Начало следующего месяца до 42 ячеек
	remaining := 42 - len(cells)
	for i := 1; i <= remaining; i++ {
		d := time.Date(year, month+1, i, 0, 0, 0, 0, time.Local)
		cells = append(cells, Cell{Date: d, DateKey: datekey.Format(d), IsCurrentMonth: false})
	}

	return cells
}

func runWindow(start time.Time, days int, _ time.Time) []Cell {
	cells := make([]Cell, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{Date: d, DateKey: datekey.Format(d), IsCurrentMonth: true})
	}
	return cells
}

func startOfWeek(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local).
		AddDate(0, 0, -int(t.Weekday()))
}

// Navigate сдвигает якорную дату на один шаг в заданном направлении (-1 или +1).
// В месячном режиме результат всегда попадает на первое число целевого месяца:
// простое прибавление месяца к произвольному числу может перескочить месяц
// в конце месяца.
func Navigate(view View, anchor time.Time, direction int) time.Time {
	switch view {
	case Month:
		return time.Date(anchor.Year(), anchor.Month()+time.Month(direction), 1, 0, 0, 0, 0, time.Local)
	case Week:
		return anchor.AddDate(0, 0, direction*7)
	case ThreeDay:
		return anchor.AddDate(0, 0, direction*3)
	}
	return anchor
}

// HeaderTitle возвращает человекочитаемый заголовок текущего окна,
// например "January 2025" или "Jan 5 - Jan 11".
func HeaderTitle(view View, anchor time.Time) string {
	if view == Month {
		return anchor.Format("January 2006")
	}
	start := anchor
	daysToAdd := 2
	if view == Week {
		start = startOfWeek(anchor)
		daysToAdd = 6
	}
	end := start.AddDate(0, 0, daysToAdd)
	return fmt.Sprintf("%s %d - %s %d",
		start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day())
}
