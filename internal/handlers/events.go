package handlers

import (
	"net/http"
	"strings"
	"time"

	"calendar_scheduler/internal/docstore"
	"calendar_scheduler/internal/models"
	"calendar_scheduler/internal/response"
	"calendar_scheduler/internal/session"
	"calendar_scheduler/internal/storage"

	"github.com/gin-gonic/gin"
)

// Docs — документное хранилище, инициализируется в main.
var Docs docstore.Store

type CreateEventInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateEventHandler обрабатывает запрос на создание события
// @Summary		Создание события
// @Description	Создаёт новое событие планирования и возвращает короткий код для приглашений
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			input	body		CreateEventInput	true	"Название события"
// @Success		200	{object}	response.CreateEventResponse	"Код созданного события"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (STORE_ERROR, CODE_GEN_ERROR)"
// @Router			/api/events [post]
func CreateEventHandler(c *gin.Context) {
	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Некорректное тело запроса",
			Details: err.Error(),
		})
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Название события не может быть пустым",
		})
		return
	}

	code, err := session.GenerateCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "CODE_GEN_ERROR",
			Message: "Не удалось сгенерировать код события",
			Details: err.Error(),
		})
		return
	}

	now := time.Now().Format(time.RFC3339)
	if err := Docs.UpsertRecord(c.Request.Context(), "events", code, docstore.Fields{
		"name":           name,
		"createdAt":      now,
		"lastAccessedAt": now,
		"version":        models.SchemaVersion,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "STORE_ERROR",
			Message: "Не удалось создать событие",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.CreateEventResponse{Code: code})
}

// GetEventHandler обрабатывает запрос метаданных события
// @Summary		Получение события
// @Description	Проверяет существование события по коду и возвращает его метаданные
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			code	path		string	true	"Код события"
// @Success		200	{object}	models.Event	"Метаданные события"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Router			/api/events/{code} [get]
func GetEventHandler(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	binder := session.NewBinder(Docs)
	event, err := binder.Bind(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие с таким кодом не существует",
		})
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEventHandler обрабатывает запрос на удаление события
// @Summary		Удаление события
// @Description	Удаляет событие вместе с участниками и бронями
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			code	path		string	true	"Код события"
// @Success		200	{object}	response.SuccessResponse	"Событие удалено"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (STORE_ERROR)"
// @Router			/api/events/{code} [delete]
func DeleteEventHandler(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	if _, err := Docs.GetRecord(c.Request.Context(), "events", code); err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие с таким кодом не существует",
		})
		return
	}

	if err := Docs.DeleteRecord(c.Request.Context(), "events", code); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "STORE_ERROR",
			Message: "Не удалось удалить событие",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Событие удалено"})
}

// GetParticipantsHandler обрабатывает запрос списка участников события
// @Summary		Список участников
// @Description	Возвращает текущий список участников события
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			code	path		string	true	"Код события"
// @Success		200	{array}		models.Participant	"Участники события"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{code}/participants [get]
func GetParticipantsHandler(c *gin.Context) {
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
	if err := storage.DB.Where("event_code = ?", code).Order("id ASC").Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки участников",
			Details: err.Error(),
		})
		return
	}

	if participants == nil {
		participants = []models.Participant{}
	}
	c.JSON(http.StatusOK, participants)
}
