// Package docstore — граница с документным хранилищем.
//
// Ядро приложения работает с хранилищем только через интерфейс Store:
// одиночные чтения и записи по коллекциям плюс подписка на партицию,
// доставляющая полные снимки коллекции на каждое изменение. Коллекции
// адресуются путями в стиле документной БД:
//
//	events
//	events/{code}/users
//	events/{code}/bookings
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound возвращается, когда запись не существует.
var ErrNotFound = errors.New("запись не найдена")

// Fields — поля одной записи документного хранилища.
type Fields map[string]interface{}

// String возвращает строковое поле записи (или пустую строку).
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// StringList возвращает поле-список строк. После прохода через JSON список
// приходит как []interface{}, поэтому поддерживаются оба представления.
func (f Fields) StringList(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Snapshot — полный снимок партиции: отображение ID записи в её поля.
// Лента изменений доставляет именно снимки, а не дельты.
type Snapshot struct {
	Partition string            `json:"partition"`
	Records   map[string]Fields `json:"records"`
}

// Store — контракт внешнего документного хранилища.
type Store interface {
	// GetRecord читает одну запись; ErrNotFound, если её нет.
	GetRecord(ctx context.Context, collection, id string) (Fields, error)
	// UpsertRecord создаёт или полностью заменяет запись.
	UpsertRecord(ctx context.Context, collection, id string, fields Fields) error
	// DeleteRecord удаляет запись. Удаление несуществующей записи не ошибка.
	DeleteRecord(ctx context.Context, collection, id string) error
	// UpdateFields обновляет отдельные поля записи, не трогая остальные.
	UpdateFields(ctx context.Context, collection, id string, fields Fields) error
	// Subscribe открывает ленту снимков партиции. Первый снимок доставляется
	// сразу после подписки, далее — после каждого изменения партиции.
	// Отмена контекста завершает подписку и закрывает канал.
	Subscribe(ctx context.Context, partition string) (<-chan Snapshot, error)
}
