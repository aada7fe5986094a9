package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"calendar_scheduler/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStore — реализация Store поверх Postgres (gorm) и Redis pub/sub.
// Записи живут в базе, лента изменений раздаётся через каналы Redis:
// после каждой записи в партицию издатель перечитывает её целиком и
// публикует полный снимок. Подписчики других экземпляров сервера получают
// тот же снимок, что и локальные.
type DBStore struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewDBStore(db *gorm.DB, rdb *redis.Client) *DBStore {
	return &DBStore{db: db, rdb: rdb}
}

const (
	kindEvents   = "events"
	kindUsers    = "users"
	kindBookings = "bookings"
)

// parseCollection разбирает путь коллекции: "events" или "events/{code}/users|bookings".
func parseCollection(collection string) (kind, eventCode string, err error) {
	parts := strings.Split(collection, "/")
	switch {
	case len(parts) == 1 && parts[0] == kindEvents:
		return kindEvents, "", nil
	case len(parts) == 3 && parts[0] == kindEvents && (parts[2] == kindUsers || parts[2] == kindBookings):
		return parts[2], parts[1], nil
	}
	return "", "", fmt.Errorf("неизвестная коллекция: %s", collection)
}

func feedChannel(partition string) string {
	return "feed:" + partition
}

func (s *DBStore) GetRecord(ctx context.Context, collection, id string) (Fields, error) {
	kind, eventCode, err := parseCollection(collection)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindEvents:
		var event models.Event
		if err := s.db.WithContext(ctx).First(&event, "code = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return eventFields(event), nil

	case kindUsers:
		var p models.Participant
		if err := s.db.WithContext(ctx).First(&p, "id = ? AND event_code = ?", id, eventCode).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return Fields{"name": p.Name, "color": p.Color}, nil

	case kindBookings:
		var b models.Booking
		if err := s.db.WithContext(ctx).First(&b, "event_code = ? AND date_key = ?", eventCode, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return Fields{"userIds": b.UserIDList()}, nil
	}
	return nil, fmt.Errorf("неизвестная коллекция: %s", collection)
}

func (s *DBStore) UpsertRecord(ctx context.Context, collection, id string, fields Fields) error {
	kind, eventCode, err := parseCollection(collection)
	if err != nil {
		return err
	}

	switch kind {
	case kindEvents:
		event := models.Event{
			Code:           id,
			Name:           fields.String("name"),
			Version:        fields.String("version"),
			CreatedAt:      parseISO(fields.String("createdAt")),
			LastAccessedAt: parseISO(fields.String("lastAccessedAt")),
		}
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&event).Error

	case kindUsers:
		p := models.Participant{
			ID:        id,
			EventCode: eventCode,
			Name:      fields.String("name"),
			Color:     fields.String("color"),
		}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error; err != nil {
			return err
		}
		s.publish(ctx, collection)
		return nil

	case kindBookings:
		b := models.Booking{EventCode: eventCode, DateKey: id}
		b.SetUserIDList(fields.StringList("userIds"))
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&b).Error; err != nil {
			return err
		}
		s.publish(ctx, collection)
		return nil
	}
	return fmt.Errorf("неизвестная коллекция: %s", collection)
}

func (s *DBStore) DeleteRecord(ctx context.Context, collection, id string) error {
	kind, eventCode, err := parseCollection(collection)
	if err != nil {
		return err
	}

	switch kind {
	case kindEvents:
		// Каскад: участники и брони не переживают само событие.
		if err := s.db.WithContext(ctx).Delete(&models.Booking{}, "event_code = ?", id).Error; err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Delete(&models.Participant{}, "event_code = ?", id).Error; err != nil {
			return err
		}
		return s.db.WithContext(ctx).Delete(&models.Event{}, "code = ?", id).Error

	case kindUsers:
		if err := s.db.WithContext(ctx).Delete(&models.Participant{}, "id = ? AND event_code = ?", id, eventCode).Error; err != nil {
			return err
		}
		s.publish(ctx, collection)
		return nil

	case kindBookings:
		if err := s.db.WithContext(ctx).Delete(&models.Booking{}, "event_code = ? AND date_key = ?", eventCode, id).Error; err != nil {
			return err
		}
		s.publish(ctx, collection)
		return nil
	}
	return fmt.Errorf("неизвестная коллекция: %s", collection)
}

func (s *DBStore) UpdateFields(ctx context.Context, collection, id string, fields Fields) error {
	kind, eventCode, err := parseCollection(collection)
	if err != nil {
		return err
	}

	switch kind {
	case kindEvents:
		updates := map[string]interface{}{}
		if v, ok := fields["name"]; ok {
			updates["name"] = v
		}
		if v, ok := fields["lastAccessedAt"]; ok {
			updates["last_accessed_at"] = parseISO(fmt.Sprint(v))
		}
		if len(updates) == 0 {
			return nil
		}
		return s.db.WithContext(ctx).Model(&models.Event{}).Where("code = ?", id).Updates(updates).Error

	case kindUsers:
		updates := map[string]interface{}{}
		if v, ok := fields["color"]; ok {
			updates["color"] = v
		}
		if v, ok := fields["name"]; ok {
			updates["name"] = v
		}
		if len(updates) == 0 {
			return nil
		}
		if err := s.db.WithContext(ctx).Model(&models.Participant{}).
			Where("id = ? AND event_code = ?", id, eventCode).Updates(updates).Error; err != nil {
			return err
		}
		s.publish(ctx, collection)
		return nil
	}
	return fmt.Errorf("обновление полей не поддерживается для коллекции %s", collection)
}

func (s *DBStore) Subscribe(ctx context.Context, partition string) (<-chan Snapshot, error) {
	kind, _, err := parseCollection(partition)
	if err != nil {
		return nil, err
	}
	if kind != kindUsers && kind != kindBookings {
		return nil, fmt.Errorf("подписка недоступна для коллекции %s", partition)
	}

	pubsub := s.rdb.Subscribe(ctx, feedChannel(partition))
	// Дожидаемся подтверждения подписки, чтобы не потерять публикации
	// между первым снимком и началом приёма сообщений.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	initial, err := s.snapshotOf(ctx, partition)
	if err != nil {
		pubsub.Close()
		return nil, err
	}

	out := make(chan Snapshot, 8)
	go func() {
		defer close(out)
		defer pubsub.Close()

		out <- initial

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var snap Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					log.Println("Ошибка разбора снимка из ленты изменений:", err)
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// publish перечитывает партицию и публикует полный снимок в Redis.
// Публикация best-effort: сама запись уже выполнена, очередной снимок
// донесёт актуальное состояние.
func (s *DBStore) publish(ctx context.Context, partition string) {
	snap, err := s.snapshotOf(ctx, partition)
	if err != nil {
		log.Println("Ошибка чтения снимка партиции", partition, ":", err)
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Println("Ошибка сериализации снимка партиции", partition, ":", err)
		return
	}
	if err := s.rdb.Publish(ctx, feedChannel(partition), payload).Err(); err != nil {
		log.Println("Ошибка публикации снимка партиции", partition, ":", err)
	}
}

func (s *DBStore) snapshotOf(ctx context.Context, partition string) (Snapshot, error) {
	kind, eventCode, err := parseCollection(partition)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Partition: partition, Records: map[string]Fields{}}

	switch kind {
	case kindUsers:
		var participants []models.Participant
		if err := s.db.WithContext(ctx).Where("event_code = ?", eventCode).Find(&participants).Error; err != nil {
			return Snapshot{}, err
		}
		for _, p := range participants {
			snap.Records[p.ID] = Fields{"name": p.Name, "color": p.Color}
		}

	case kindBookings:
		var bookings []models.Booking
		if err := s.db.WithContext(ctx).Where("event_code = ?", eventCode).Find(&bookings).Error; err != nil {
			return Snapshot{}, err
		}
		for _, b := range bookings {
			snap.Records[b.DateKey] = Fields{"userIds": b.UserIDList()}
		}
	}

	return snap, nil
}

func eventFields(event models.Event) Fields {
	return Fields{
		"name":           event.Name,
		"version":        event.Version,
		"createdAt":      event.CreatedAt.Format(time.RFC3339),
		"lastAccessedAt": event.LastAccessedAt.Format(time.RFC3339),
	}
}

func parseISO(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now()
	}
	return t
}
