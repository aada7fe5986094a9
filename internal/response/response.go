package response

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: название события не может быть пустым
	Details string `json:"details,omitempty"`
}

// CreateEventResponse представляет ответ на создание события
type CreateEventResponse struct {
	// Короткий код события для приглашения участников
	// example: K7KWHJ
	Code string `json:"code"`
}
