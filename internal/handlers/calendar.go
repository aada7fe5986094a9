package handlers

import (
	"net/http"
	"time"

	"calendar_scheduler/internal/calview"
	"calendar_scheduler/internal/datekey"
	"calendar_scheduler/internal/response"

	"github.com/gin-gonic/gin"
)

// CalendarResponse содержит окно календаря для заданного режима и якорной даты.
type CalendarResponse struct {
	View        calview.View   `json:"view"`
	AnchorDate  string         `json:"anchor_date"`
	HeaderTitle string         `json:"header_title"`
	Cells       []calview.Cell `json:"cells"`
}

// GetCalendarHandler обрабатывает запрос окна календаря
// @Summary		Окно календаря
// @Description	Возвращает упорядоченный набор дат для отображения: месяц (42 ячейки), неделя (7) или 3 дня
// @Tags			calendar
// @Accept			json
// @Produce		json
// @Param			code	path		string	true	"Код события"
// @Param			view	query		string	false	"Режим отображения: month | week | 3day (по умолчанию month)"
// @Param			date	query		string	false	"Якорная дата YYYY-MM-DD (по умолчанию сегодня)"
// @Success		200	{object}	CalendarResponse	"Окно календаря"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_VIEW, INVALID_DATE)"
// @Router			/api/events/{code}/calendar [get]
func GetCalendarHandler(c *gin.Context) {
	view := calview.View(c.DefaultQuery("view", string(calview.Month)))
	if !view.Valid() {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_VIEW",
			Message: "Неизвестный режим отображения",
		})
		return
	}

	anchor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := datekey.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_DATE",
				Message: "Дата должна иметь формат YYYY-MM-DD",
			})
			return
		}
		anchor = parsed
	}

	c.JSON(http.StatusOK, CalendarResponse{
		View:        view,
		AnchorDate:  datekey.Format(anchor),
		HeaderTitle: calview.HeaderTitle(view, anchor),
		Cells:       calview.Window(view, anchor),
	})
}
