package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"calendar_scheduler/internal/docstore"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6, "Код события — ровно 6 символов")
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r),
				"Символ %q вне алфавита [A-Z0-9]", r)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "Коды должны быть разнообразными")
}

func TestGenerateCodeUniformDraw(t *testing.T) {
	// Байты от 252 и выше пропускаются: 256 % 36 = 4, без отбрасывания
	// символы A-D выпадали бы заметно чаще остальных.
	src := bytes.NewReader([]byte{252, 253, 254, 255, 0, 25, 26, 35, 36, 251})
	code, err := generateCode(src)
	assert.NoError(t, err)
	assert.Equal(t, "AZ09A9", code, "Отброшенные байты не должны влиять на код")
}

func TestGenerateCodeExhaustedSource(t *testing.T) {
	_, err := generateCode(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err, "Исчерпанный источник случайности — ошибка, а не укороченный код")
}

// fakeDocs — минимальное документное хранилище для проверки привязки сессии.
type fakeDocs struct {
	mu      sync.Mutex
	events  map[string]docstore.Fields
	updates map[string]docstore.Fields
	failGet bool
	failUpd bool
}

func (f *fakeDocs) GetRecord(_ context.Context, collection, id string) (docstore.Fields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errors.New("хранилище недоступно")
	}
	if collection == "events" {
		if fields, ok := f.events[id]; ok {
			return fields, nil
		}
	}
	return nil, docstore.ErrNotFound
}

func (f *fakeDocs) UpsertRecord(context.Context, string, string, docstore.Fields) error {
	return nil
}

func (f *fakeDocs) DeleteRecord(context.Context, string, string) error {
	return nil
}

func (f *fakeDocs) UpdateFields(_ context.Context, _ string, id string, fields docstore.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpd {
		return errors.New("хранилище недоступно")
	}
	if f.updates == nil {
		f.updates = map[string]docstore.Fields{}
	}
	f.updates[id] = fields
	return nil
}

func (f *fakeDocs) Subscribe(context.Context, string) (<-chan docstore.Snapshot, error) {
	ch := make(chan docstore.Snapshot)
	close(ch)
	return ch, nil
}

func TestBind(t *testing.T) {
	docs := &fakeDocs{events: map[string]docstore.Fields{
		"K7KWHJ": {
			"name":           "Поход в горы",
			"version":        "1.4.0",
			"createdAt":      "2025-06-01T10:00:00Z",
			"lastAccessedAt": "2025-06-02T10:00:00Z",
		},
	}}
	binder := NewBinder(docs)

	event, err := binder.Bind(context.Background(), "K7KWHJ")
	assert.NoError(t, err)
	assert.Equal(t, "K7KWHJ", event.Code)
	assert.Equal(t, "Поход в горы", event.Name)
	assert.Equal(t, 2025, event.CreatedAt.Year())

	// Открытие сессии освежает lastAccessedAt.
	fields, ok := docs.updates["K7KWHJ"]
	assert.True(t, ok, "Bind должен обновить lastAccessedAt")
	_, err = time.Parse(time.RFC3339, fields.String("lastAccessedAt"))
	assert.NoError(t, err)
}

func TestBindNotFound(t *testing.T) {
	binder := NewBinder(&fakeDocs{})

	_, err := binder.Bind(context.Background(), "NOPE11")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestBindLookupFailure(t *testing.T) {
	// Ошибка чтения приравнивается к отсутствию события: терминальное состояние.
	binder := NewBinder(&fakeDocs{failGet: true})

	_, err := binder.Bind(context.Background(), "K7KWHJ")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestBindSurvivesRefreshFailure(t *testing.T) {
	docs := &fakeDocs{
		events: map[string]docstore.Fields{
			"K7KWHJ": {"name": "Поход в горы"},
		},
		failUpd: true,
	}
	binder := NewBinder(docs)

	// Неудача обновления lastAccessedAt глотается.
	event, err := binder.Bind(context.Background(), "K7KWHJ")
	assert.NoError(t, err)
	assert.Equal(t, "Поход в горы", event.Name)
}

func TestPartitionNames(t *testing.T) {
	assert.Equal(t, "events/K7KWHJ/users", UsersPartition("K7KWHJ"))
	assert.Equal(t, "events/K7KWHJ/bookings", BookingsPartition("K7KWHJ"))
}
