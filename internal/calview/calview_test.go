package calview

import (
	"testing"
	"time"

	"calendar_scheduler/internal/datekey"

	"github.com/stretchr/testify/assert"
)

func localDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestMonthWindowSize(t *testing.T) {
	// Сетка месяца — всегда 42 ячейки, для любого месяца.
	anchors := []time.Time{
		localDate(2025, time.January, 15),
		localDate(2025, time.February, 1),
		localDate(2024, time.February, 29),
		localDate(2025, time.June, 30),
		localDate(2025, time.December, 31),
	}
	for _, anchor := range anchors {
		cells := Window(Month, anchor)
		assert.Len(t, cells, 42, "Сетка месяца для %s должна содержать 42 ячейки", anchor)
	}
}

func TestMonthWindowCurrentMonthFlags(t *testing.T) {
	anchor := localDate(2025, time.June, 15)
	cells := Window(Month, anchor)

	count := 0
	for _, cell := range cells {
		if cell.IsCurrentMonth {
			count++
			assert.Equal(t, time.June, cell.Date.Month(), "Помеченная ячейка должна быть днём якорного месяца")
		}
	}
	assert.Equal(t, 30, count, "В июне 30 дней якорного месяца")
}

func TestMonthWindowPadding(t *testing.T) {
	// Июнь 2025 начинается с воскресенья: слева хвоста быть не должно.
	cells := Window(Month, localDate(2025, time.June, 15))
	assert.True(t, cells[0].IsCurrentMonth)
	assert.Equal(t, "2025-06-01", cells[0].DateKey)

	// Август 2025 начинается с пятницы: первые 5 ячеек — хвост июля.
	cells = Window(Month, localDate(2025, time.August, 10))
	for i := 0; i < 5; i++ {
		assert.False(t, cells[i].IsCurrentMonth)
		assert.Equal(t, time.July, cells[i].Date.Month())
	}
	assert.Equal(t, "2025-08-01", cells[5].DateKey)
}

func TestWeekWindow(t *testing.T) {
	// Среда 2025-06-04: неделя начинается с воскресенья 2025-06-01.
	cells := Window(Week, localDate(2025, time.June, 4))
	assert.Len(t, cells, 7)
	assert.Equal(t, time.Sunday, cells[0].Date.Weekday(), "Неделя должна начинаться с воскресенья")
	assert.Equal(t, "2025-06-01", cells[0].DateKey)
	for i := 1; i < 7; i++ {
		assert.Equal(t, cells[i-1].Date.AddDate(0, 0, 1).Day(), cells[i].Date.Day(),
			"Дни недели должны идти подряд")
	}
}

func TestWeekWindowOnSunday(t *testing.T) {
	// Якорная дата уже воскресенье — окно начинается с неё самой.
	cells := Window(Week, localDate(2025, time.June, 1))
	assert.Equal(t, "2025-06-01", cells[0].DateKey)
	assert.Equal(t, "2025-06-07", cells[6].DateKey)
}

func TestThreeDayWindow(t *testing.T) {
	// 3-дневное окно начинается с якорной даты без выравнивания.
	cells := Window(ThreeDay, localDate(2025, time.June, 4))
	assert.Len(t, cells, 3)
	assert.Equal(t, "2025-06-04", cells[0].DateKey)
	assert.Equal(t, "2025-06-05", cells[1].DateKey)
	assert.Equal(t, "2025-06-06", cells[2].DateKey)
}

func TestNavigateMonthLandsOnFirstDay(t *testing.T) {
	// 31 января + месяц не должно перескакивать февраль.
	next := Navigate(Month, localDate(2025, time.January, 31), 1)
	assert.Equal(t, "2025-02-01", datekey.Format(next))

	prev := Navigate(Month, localDate(2025, time.March, 31), -1)
	assert.Equal(t, "2025-02-01", datekey.Format(prev))
}

func TestNavigateWeekAndThreeDay(t *testing.T) {
	anchor := localDate(2025, time.June, 4)
	assert.Equal(t, "2025-06-11", datekey.Format(Navigate(Week, anchor, 1)))
	assert.Equal(t, "2025-05-28", datekey.Format(Navigate(Week, anchor, -1)))
	assert.Equal(t, "2025-06-07", datekey.Format(Navigate(ThreeDay, anchor, 1)))
	assert.Equal(t, "2025-06-01", datekey.Format(Navigate(ThreeDay, anchor, -1)))
}

func TestHeaderTitle(t *testing.T) {
	assert.Equal(t, "June 2025", HeaderTitle(Month, localDate(2025, time.June, 15)))
	// Неделя среды 2025-01-08: с воскресенья 5-го по субботу 11-е.
	assert.Equal(t, "Jan 5 - Jan 11", HeaderTitle(Week, localDate(2025, time.January, 8)))
	assert.Equal(t, "Jan 30 - Feb 1", HeaderTitle(ThreeDay, localDate(2025, time.January, 30)))
}

func TestViewValid(t *testing.T) {
	assert.True(t, Month.Valid())
	assert.True(t, Week.Valid())
	assert.True(t, ThreeDay.Valid())
	assert.False(t, View("year").Valid())
}
