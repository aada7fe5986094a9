package models

import (
	"strings"
	"time"
)

// SchemaVersion записывается в каждое событие при создании.
const SchemaVersion = "1.4.0"

type Event struct {
	Code           string    `gorm:"primaryKey;size:6" json:"code"`  // Короткий код события, 6 символов [A-Z0-9]
	Name           string    `gorm:"not null" json:"name"`           // Название события
	Version        string    `gorm:"not null" json:"version"`        // Версия схемы данных
	CreatedAt      time.Time `gorm:"not null" json:"createdAt"`      // Время создания
	LastAccessedAt time.Time `gorm:"index;not null" json:"lastAccessedAt"` // Обновляется при каждом открытии события
}

type Participant struct {
	ID        string `gorm:"primaryKey" json:"id"`               // Случайный идентификатор (uuid)
	EventCode string `gorm:"index;not null" json:"-"`            // Код события, к которому относится участник
	Name      string `gorm:"not null" json:"name"`               // Отображаемое имя
	Color     string `gorm:"not null" json:"color"`              // Цвет участника, например "#6366f1"
}

type Booking struct {
	EventCode string `gorm:"primaryKey" json:"-"`       // Код события
	DateKey   string `gorm:"primaryKey" json:"date"`    // Дата в формате YYYY-MM-DD
	UserIDs   string `gorm:"not null" json:"-"`         // Список ID участников, например "u1,u2,u3"
}

// UserIDList возвращает список ID участников брони.
func (b *Booking) UserIDList() []string {
	if b.UserIDs == "" {
		return []string{}
	}
	return strings.Split(b.UserIDs, ",")
}

// SetUserIDList сериализует список ID участников в строку для хранения.
func (b *Booking) SetUserIDList(ids []string) {
	b.UserIDs = strings.Join(ids, ",")
}
