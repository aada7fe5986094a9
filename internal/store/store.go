// Package store — хранилище состояния одной сессии планирования.
//
// Store владеет локальным состоянием сессии: списком участников, картой
// броней, активным участником и состоянием отображения. Мутации применяются
// сначала локально (оптимистично), затем зеркалируются во внешнее документное
// хранилище асинхронно, без ожидания ответа. Ошибка зеркалирования показывает
// уведомление и НЕ откатывает локальное состояние: истину восстановит
// следующий снимок ленты изменений.
//
// Все методы Store вызываются из единственной горутины цикла сессии,
// поэтому блокировки не нужны. Горутины зеркалирования обращаются только
// к документному хранилищу.
package store

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"calendar_scheduler/internal/calview"
	"calendar_scheduler/internal/datekey"
	"calendar_scheduler/internal/docstore"
	"calendar_scheduler/internal/models"
	"calendar_scheduler/internal/resolver"

	"github.com/google/uuid"
)

// Toast — одноразовое уведомление пользователю. Слот один: новое уведомление
// заменяет предыдущее, очередь не ведётся.
type Toast struct {
	Message string `json:"message"`
	Type    string `json:"type"` // info | success | error
}

// Store — состояние сессии одного подключённого пользователя.
type Store struct {
	EventCode string

	Participants []models.Participant
	Bookings     map[string][]string // ключ даты -> ID участников

	ActiveParticipant string
	Filter            []string

	View       calview.View
	AnchorDate time.Time

	docs   docstore.Store
	notify func(Toast)
}

// New создаёт хранилище сессии для события. notify вызывается при каждом
// уведомлении, в том числе из горутин зеркалирования.
func New(eventCode string, docs docstore.Store, notify func(Toast)) *Store {
	if notify == nil {
		notify = func(Toast) {}
	}
	return &Store{
		EventCode:  eventCode,
		Bookings:   map[string][]string{},
		View:       calview.Month,
		AnchorDate: time.Now(),
		docs:       docs,
		notify:     notify,
	}
}

func (s *Store) usersCollection() string {
	return "events/" + s.EventCode + "/users"
}

func (s *Store) bookingsCollection() string {
	return "events/" + s.EventCode + "/bookings"
}

// mirror выполняет команду записи во внешнее хранилище в режиме
// fire-and-forget. Об ошибке сообщается один раз уведомлением.
func (s *Store) mirror(message string, fn func(ctx context.Context) error) {
	go func() {
		if err := fn(context.Background()); err != nil {
			log.Println("Ошибка записи во внешнее хранилище:", err)
			s.notify(Toast{Message: message, Type: "error"})
		}
	}()
}

// AddParticipant добавляет участника и делает его активным.
// Возвращает ID нового участника, либо пустую строку при отказе валидации.
func (s *Store) AddParticipant(name, color string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		s.notify(Toast{Message: "Имя участника не может быть пустым", Type: "error"})
		return ""
	}

	p := models.Participant{
		ID:        uuid.NewString(),
		EventCode: s.EventCode,
		Name:      name,
		Color:     color,
	}
	s.Participants = append(s.Participants, p)
	s.ActiveParticipant = p.ID

	s.mirror("Не удалось сохранить участника", func(ctx context.Context) error {
		return s.docs.UpsertRecord(ctx, s.usersCollection(), p.ID,
			docstore.Fields{"name": p.Name, "color": p.Color})
	})
	return p.ID
}

// UpdateParticipantColor меняет цвет участника. Неизвестный ID — no-op.
func (s *Store) UpdateParticipantColor(id, color string) {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			s.Participants[i].Color = color
			s.mirror("Не удалось обновить цвет участника", func(ctx context.Context) error {
				return s.docs.UpdateFields(ctx, s.usersCollection(), id,
					docstore.Fields{"color": color})
			})
			return
		}
	}
}

// RemoveParticipant удаляет участника. Последнего оставшегося участника
// удалить нельзя. Из всех броней ID участника вычищается; опустевшие брони
// удаляются. Если удалён активный участник, активным становится любой
// из оставшихся.
func (s *Store) RemoveParticipant(id string) bool {
	if len(s.Participants) <= 1 {
		s.notify(Toast{Message: "Нельзя удалить последнего участника", Type: "error"})
		return false
	}

	idx := -1
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.Participants = append(s.Participants[:idx], s.Participants[idx+1:]...)

	// Каскад по броням
	for dateKey, userIDs := range s.Bookings {
		updated := removeID(userIDs, id)
		if len(updated) == len(userIDs) {
			continue
		}
		dk := dateKey
		if len(updated) == 0 {
			delete(s.Bookings, dateKey)
			s.mirror("Не удалось обновить бронь", func(ctx context.Context) error {
				return s.docs.DeleteRecord(ctx, s.bookingsCollection(), dk)
			})
		} else {
			s.Bookings[dateKey] = updated
			list := updated
			s.mirror("Не удалось обновить бронь", func(ctx context.Context) error {
				return s.docs.UpsertRecord(ctx, s.bookingsCollection(), dk,
					docstore.Fields{"userIds": list})
			})
		}
	}

	if s.ActiveParticipant == id {
		s.ActiveParticipant = ""
		if len(s.Participants) > 0 {
			s.ActiveParticipant = s.Participants[0].ID
		}
	}

	s.mirror("Не удалось удалить участника", func(ctx context.Context) error {
		return s.docs.DeleteRecord(ctx, s.usersCollection(), id)
	})
	return true
}

// ToggleBooking переключает доступность активного участника на дате.
// Повторный вызов возвращает бронь в исходное состояние.
func (s *Store) ToggleBooking(dateKey string) {
	if s.ActiveParticipant == "" {
		s.notify(Toast{Message: "Сначала добавьте участника, чтобы отмечать даты", Type: "info"})
		return
	}

	current := s.Bookings[dateKey]
	updated := removeID(current, s.ActiveParticipant)
	if len(updated) == len(current) {
		updated = append(updated, s.ActiveParticipant)
	}

	if len(updated) == 0 {
		delete(s.Bookings, dateKey)
		s.mirror("Не удалось сохранить бронь", func(ctx context.Context) error {
			return s.docs.DeleteRecord(ctx, s.bookingsCollection(), dateKey)
		})
		return
	}

	s.Bookings[dateKey] = updated
	list := updated
	s.mirror("Не удалось сохранить бронь", func(ctx context.Context) error {
		return s.docs.UpsertRecord(ctx, s.bookingsCollection(), dateKey,
			docstore.Fields{"userIds": list})
	})
}

// SetActiveParticipant выбирает активного участника. Локальная операция.
func (s *Store) SetActiveParticipant(id string) {
	s.ActiveParticipant = id
}

// SetFilter задаёт набор обязательных участников для подбора даты.
func (s *Store) SetFilter(ids []string) {
	s.Filter = ids
}

// SetView переключает режим отображения. Неизвестный режим игнорируется.
func (s *Store) SetView(view calview.View) {
	if view.Valid() {
		s.View = view
	}
}

// SetAnchorDate задаёт якорную дату отображения.
func (s *Store) SetAnchorDate(t time.Time) {
	s.AnchorDate = t
}

// NavigateDate сдвигает якорную дату на шаг текущего режима.
func (s *Store) NavigateDate(direction int) {
	s.AnchorDate = calview.Navigate(s.View, s.AnchorDate, direction)
}

// ApplyParticipantsSnapshot заменяет список участников целиком содержимым
// снимка ленты изменений: внешнее хранилище — владелец истины. Если активный
// участник пропал из нового списка (удалён из другой сессии), активным
// становится первый участник списка, либо выбор сбрасывается.
func (s *Store) ApplyParticipantsSnapshot(snap docstore.Snapshot) {
	participants := make([]models.Participant, 0, len(snap.Records))
	for id, fields := range snap.Records {
		participants = append(participants, models.Participant{
			ID:        id,
			EventCode: s.EventCode,
			Name:      fields.String("name"),
			Color:     fields.String("color"),
		})
	}
	sortParticipants(participants)
	s.Participants = participants

	if s.ActiveParticipant != "" {
		for _, p := range participants {
			if p.ID == s.ActiveParticipant {
				return
			}
		}
	}
	s.ActiveParticipant = ""
	if len(participants) > 0 {
		s.ActiveParticipant = participants[0].ID
	}
}

// ApplyBookingsSnapshot заменяет карту броней целиком содержимым снимка.
func (s *Store) ApplyBookingsSnapshot(snap docstore.Snapshot) {
	bookings := make(map[string][]string, len(snap.Records))
	for dateKey, fields := range snap.Records {
		ids := fields.StringList("userIds")
		if len(ids) > 0 {
			bookings[dateKey] = ids
		}
	}
	s.Bookings = bookings
}

// UIState — полное состояние сессии, отправляемое клиенту после каждого
// изменения: данные, окно календаря и результат подбора лучших дат.
type UIState struct {
	EventCode         string               `json:"event_code"`
	Participants      []models.Participant `json:"participants"`
	Bookings          map[string][]string  `json:"bookings"`
	ActiveParticipant string               `json:"active_participant"`
	Filter            []string             `json:"filter"`
	View              calview.View         `json:"view"`
	AnchorDate        string               `json:"anchor_date"`
	HeaderTitle       string               `json:"header_title"`
	Window            []calview.Cell       `json:"window"`
	BestDates         []resolver.BestDate  `json:"best_dates"`
}

// UIState собирает состояние для клиента. Подбор лучших дат пересчитывается
// полностью при каждом вызове.
func (s *Store) UIState() UIState {
	return UIState{
		EventCode:         s.EventCode,
		Participants:      s.Participants,
		Bookings:          s.Bookings,
		ActiveParticipant: s.ActiveParticipant,
		Filter:            s.Filter,
		View:              s.View,
		AnchorDate:        datekey.Format(s.AnchorDate),
		HeaderTitle:       calview.HeaderTitle(s.View, s.AnchorDate),
		Window:            calview.Window(s.View, s.AnchorDate),
		BestDates:         resolver.BestDates(s.Bookings, s.Participants, s.Filter, datekey.Format(time.Now())),
	}
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Снимок приходит картой, порядок участников фиксируем по ID.
func sortParticipants(participants []models.Participant) {
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})
}
