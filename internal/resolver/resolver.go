// Package resolver вычисляет лучшие даты по карте броней.
package resolver

import (
	"sort"

	"calendar_scheduler/internal/models"
)

// BestDate — одна из лучших дат: максимум участников при учёте фильтра.
type BestDate struct {
	DateKey string               `json:"date"`
	Count   int                  `json:"count"`
	Missing []models.Participant `json:"missing"` // Участники, которых нет в этой дате
}

// BestDates возвращает все даты с максимальным количеством доступных
// участников, отсортированные по возрастанию даты. Алгоритм:
//  1. ID, которых уже нет в списке участников, отбрасываются (защита от
//     устаревших ссылок после удаления участника); опустевшие даты тоже.
//  2. Даты строго раньше today не предлагаются.
//  3. Если задан фильтр required, дата обязана содержать все его ID.
//  4. При равенстве счёта возвращаются ВСЕ даты-кандидаты, без предпочтений.
//
// Результат nil означает «нет рекомендации». Вычисление всегда полное,
// без инкрементальных обновлений: объёмы данных — десятки участников и
// сотни дат.
func BestDates(bookings map[string][]string, roster []models.Participant, required []string, todayKey string) []BestDate {
	validIDs := make(map[string]bool, len(roster))
	for _, p := range roster {
		validIDs[p.ID] = true
	}

	counts := make(map[string]map[string]bool)
	for date, userIDs := range bookings {
		set := make(map[string]bool)
		for _, id := range userIDs {
			if validIDs[id] {
				set[id] = true
			}
		}
		if len(set) > 0 {
			counts[date] = set
		}
	}

	// Лексикографический порядок ключей YYYY-MM-DD совпадает с порядком дат.
	var eligible []string
	for date := range counts {
		if date < todayKey {
			continue
		}
		if !containsAll(counts[date], required) {
			continue
		}
		eligible = append(eligible, date)
	}

	if len(eligible) == 0 {
		return nil
	}

	maxCount := 0
	for _, date := range eligible {
		if n := len(counts[date]); n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		return nil
	}

	var bestKeys []string
	for _, date := range eligible {
		if len(counts[date]) == maxCount {
			bestKeys = append(bestKeys, date)
		}
	}
	sort.Strings(bestKeys)

	results := make([]BestDate, 0, len(bestKeys))
	for _, date := range bestKeys {
		present := counts[date]
		missing := make([]models.Participant, 0)
		for _, p := range roster {
			if !present[p.ID] {
				missing = append(missing, p)
			}
		}
		results = append(results, BestDate{
			DateKey: date,
			Count:   maxCount,
			Missing: missing,
		})
	}

	return results
}

func containsAll(set map[string]bool, required []string) bool {
	for _, id := range required {
		if !set[id] {
			return false
		}
	}
	return true
}
