package resolver

import (
	"testing"

	"calendar_scheduler/internal/models"

	"github.com/stretchr/testify/assert"
)

var roster = []models.Participant{
	{ID: "A", Name: "Алиса", Color: "#ef4444"},
	{ID: "B", Name: "Борис", Color: "#22c55e"},
	{ID: "C", Name: "Вера", Color: "#6366f1"},
}

func TestBestDatesSingleWinner(t *testing.T) {
	bookings := map[string][]string{
		"2025-06-01": {"A", "B"},
		"2025-06-02": {"A", "B", "C"},
	}

	result := BestDates(bookings, roster, nil, "2025-06-01")
	assert.Len(t, result, 1)
	assert.Equal(t, "2025-06-02", result[0].DateKey)
	assert.Equal(t, 3, result[0].Count)
	assert.Empty(t, result[0].Missing, "Все участники доступны — отсутствующих нет")
}

func TestBestDatesRequiredFilter(t *testing.T) {
	bookings := map[string][]string{
		"2025-06-01": {"A", "B"},
		"2025-06-02": {"A", "B", "C"},
	}

	// C обязателен: дата без C исключается.
	result := BestDates(bookings, roster, []string{"C"}, "2025-06-01")
	assert.Len(t, result, 1)
	assert.Equal(t, "2025-06-02", result[0].DateKey)
}

func TestBestDatesTies(t *testing.T) {
	bookings := map[string][]string{
		"2025-07-02": {"A", "B"},
		"2025-07-01": {"A", "B"},
	}

	result := BestDates(bookings, roster, nil, "2025-07-01")
	assert.Len(t, result, 2, "При равном счёте возвращаются все даты")
	assert.Equal(t, "2025-07-01", result[0].DateKey, "Даты идут по возрастанию")
	assert.Equal(t, "2025-07-02", result[1].DateKey)
	for _, best := range result {
		assert.Equal(t, 2, best.Count)
		assert.Len(t, best.Missing, 1)
		assert.Equal(t, "C", best.Missing[0].ID)
	}
}

func TestBestDatesExcludesPast(t *testing.T) {
	bookings := map[string][]string{
		"2025-06-01": {"A", "B", "C"}, // лучший счёт, но дата уже прошла
		"2025-06-10": {"A"},
	}

	result := BestDates(bookings, roster, nil, "2025-06-05")
	assert.Len(t, result, 1)
	assert.Equal(t, "2025-06-10", result[0].DateKey)
	assert.Equal(t, 1, result[0].Count)
}

func TestBestDatesTodayIsEligible(t *testing.T) {
	bookings := map[string][]string{
		"2025-06-05": {"A", "B"},
	}

	// Исключаются только даты СТРОГО раньше сегодняшней.
	result := BestDates(bookings, roster, nil, "2025-06-05")
	assert.Len(t, result, 1)
	assert.Equal(t, "2025-06-05", result[0].DateKey)
}

func TestBestDatesDropsStaleIDs(t *testing.T) {
	// "X" удалён из списка участников, его брони не считаются.
	bookings := map[string][]string{
		"2025-06-01": {"X"},
		"2025-06-02": {"A", "X"},
	}

	result := BestDates(bookings, roster, nil, "2025-06-01")
	assert.Len(t, result, 1)
	assert.Equal(t, "2025-06-02", result[0].DateKey)
	assert.Equal(t, 1, result[0].Count, "Устаревший ID не учитывается в счёте")
}

func TestBestDatesNoRecommendation(t *testing.T) {
	assert.Nil(t, BestDates(map[string][]string{}, roster, nil, "2025-06-01"),
		"Пустая карта броней — нет рекомендации")

	bookings := map[string][]string{
		"2025-06-01": {"A"},
	}
	assert.Nil(t, BestDates(bookings, roster, nil, "2025-06-02"),
		"Все даты в прошлом — нет рекомендации")

	assert.Nil(t, BestDates(bookings, roster, []string{"B"}, "2025-06-01"),
		"Фильтр не выполняется ни на одной дате — нет рекомендации")
}

func TestBestDatesDuplicateIDsCountOnce(t *testing.T) {
	bookings := map[string][]string{
		"2025-06-01": {"A", "A", "B"},
	}

	result := BestDates(bookings, roster, nil, "2025-06-01")
	assert.Len(t, result, 1)
	assert.Equal(t, 2, result[0].Count, "Повторы ID не увеличивают счёт")
}
