package handlers

import (
	"net/http"
	"strings"
	"time"

	"calendar_scheduler/internal/datekey"
	"calendar_scheduler/internal/models"
	"calendar_scheduler/internal/resolver"
	"calendar_scheduler/internal/response"
	"calendar_scheduler/internal/storage"

	"github.com/gin-gonic/gin"
)

// SummaryResponse содержит результат подбора лучших дат события.
type SummaryResponse struct {
	// Все даты с максимальным количеством доступных участников,
	// по возрастанию даты. null — нет рекомендации.
	BestDates []resolver.BestDate `json:"best_dates"`
}

// GetSummaryHandler обрабатывает запрос подбора лучших дат
// @Summary		Подбор лучших дат
// @Description	Возвращает даты с максимальным пересечением доступности участников, с учётом фильтра обязательных участников
// @Tags			summary
// @Accept			json
// @Produce		json
// @Param			code	path		string	true	"Код события"
// @Param			required	query	string	false	"ID обязательных участников через запятую"
// @Success		200	{object}	SummaryResponse	"Лучшие даты"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{code}/summary [get]
func GetSummaryHandler(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var event models.Event
	if err := storage.DB.First(&event, "code = ?", code).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие с таким кодом не существует",
		})
		return
	}

	var participants []models.Participant
	if err := storage.DB.Where("event_code = ?", code).Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки участников",
			Details: err.Error(),
		})
		return
	}

	var bookingRows []models.Booking
	if err := storage.DB.Where("event_code = ?", code).Find(&bookingRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки броней",
			Details: err.Error(),
		})
		return
	}

	bookings := make(map[string][]string, len(bookingRows))
	for _, row := range bookingRows {
		bookings[row.DateKey] = row.UserIDList()
	}

	var required []string
	if raw := c.Query("required"); raw != "" {
		required = strings.Split(raw, ",")
	}

	best := resolver.BestDates(bookings, participants, required, datekey.Format(time.Now()))
	c.JSON(http.StatusOK, SummaryResponse{BestDates: best})
}
