// Package session — привязка кода события к живой сессии планирования.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"log"
	"time"

	"calendar_scheduler/internal/docstore"
	"calendar_scheduler/internal/models"
)

// ErrEventNotFound означает, что события с таким кодом не существует.
// Для интерфейса это терминальное состояние: дальше только возврат
// на страницу создания события.
var ErrEventNotFound = errors.New("событие не найдено")

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode генерирует код события: 6 символов алфавита [A-Z0-9],
// криптографически стойкий источник случайности. Коллизии кодов разруливает
// уникальность ключа во внешнем хранилище.
func GenerateCode() (string, error) {
	return generateCode(rand.Reader)
}

// generateCode выбирает символы равномерно: 256 не кратно 36, поэтому байты
// от 252 и выше отбрасываются, иначе начало алфавита выпадало бы чаще.
func generateCode(r io.Reader) (string, error) {
	const limit = 252 // 36 * 7
	code := make([]byte, 6)
	buf := make([]byte, 1)
	for i := 0; i < len(code); {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		if buf[0] >= limit {
			continue
		}
		code[i] = codeAlphabet[int(buf[0])%len(codeAlphabet)]
		i++
	}
	return string(code), nil
}

// Binder проверяет существование события и открывает область подписок.
type Binder struct {
	docs docstore.Store
}

func NewBinder(docs docstore.Store) *Binder {
	return &Binder{docs: docs}
}

// Bind ищет событие по коду. Если событие найдено, возвращает его метаданные
// и best-effort обновляет lastAccessedAt: неудача обновления глотается,
// сессия продолжает работу. Если события нет или чтение не удалось —
// ErrEventNotFound.
func (b *Binder) Bind(ctx context.Context, code string) (models.Event, error) {
	fields, err := b.docs.GetRecord(ctx, "events", code)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			log.Println("Ошибка проверки события", code, ":", err)
		}
		return models.Event{}, ErrEventNotFound
	}

	if err := b.docs.UpdateFields(ctx, "events", code, docstore.Fields{
		"lastAccessedAt": time.Now().Format(time.RFC3339),
	}); err != nil {
		log.Println("Не удалось обновить lastAccessedAt для события", code, ":", err)
	}

	event := models.Event{
		Code:    code,
		Name:    fields.String("name"),
		Version: fields.String("version"),
	}
	if t, err := time.Parse(time.RFC3339, fields.String("createdAt")); err == nil {
		event.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, fields.String("lastAccessedAt")); err == nil {
		event.LastAccessedAt = t
	}
	return event, nil
}

// UsersPartition возвращает имя партиции участников события.
func UsersPartition(code string) string {
	return "events/" + code + "/users"
}

// BookingsPartition возвращает имя партиции броней события.
func BookingsPartition(code string) string {
	return "events/" + code + "/bookings"
}
