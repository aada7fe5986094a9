package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"calendar_scheduler/internal/docstore"
	"calendar_scheduler/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeDocs — документное хранилище в памяти для тестов обработчиков событий.
type fakeDocs struct {
	mu      sync.Mutex
	records map[string]map[string]docstore.Fields
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{records: map[string]map[string]docstore.Fields{}}
}

func (f *fakeDocs) GetRecord(_ context.Context, collection, id string) (docstore.Fields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fields, ok := f.records[collection][id]; ok {
		return fields, nil
	}
	return nil, docstore.ErrNotFound
}

func (f *fakeDocs) UpsertRecord(_ context.Context, collection, id string, fields docstore.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.records[collection] == nil {
		f.records[collection] = map[string]docstore.Fields{}
	}
	f.records[collection][id] = fields
	return nil
}

func (f *fakeDocs) DeleteRecord(_ context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records[collection], id)
	return nil
}

func (f *fakeDocs) UpdateFields(_ context.Context, collection, id string, fields docstore.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.records[collection][id]; ok {
		for k, v := range fields {
			existing[k] = v
		}
	}
	return nil
}

func (f *fakeDocs) Subscribe(context.Context, string) (<-chan docstore.Snapshot, error) {
	ch := make(chan docstore.Snapshot)
	close(ch)
	return ch, nil
}

func setupEventsServer(docs docstore.Store) *httptest.Server {
	gin.SetMode(gin.TestMode)
	Docs = docs
	r := gin.New()
	r.POST("/api/events", CreateEventHandler)
	r.GET("/api/events/:code", GetEventHandler)
	r.DELETE("/api/events/:code", DeleteEventHandler)
	return httptest.NewServer(r)
}

func TestCreateEventHandler(t *testing.T) {
	docs := newFakeDocs()
	ts := setupEventsServer(docs)
	defer ts.Close()

	body := bytes.NewBufferString(`{"name": "  Поход в горы  "}`)
	res, err := http.Post(ts.URL+"/api/events", "application/json", body)
	assert.NoError(t, err, "Ошибка запроса создания события")
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var created response.CreateEventResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Len(t, created.Code, 6, "Код события — ровно 6 символов")
	for _, r := range created.Code {
		assert.True(t, strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r),
			"Символ %q вне алфавита [A-Z0-9]", r)
	}

	fields, ok := docs.records["events"][created.Code]
	assert.True(t, ok, "Событие должно быть записано в хранилище")
	assert.Equal(t, "Поход в горы", fields.String("name"), "Название сохраняется без пробелов по краям")
	assert.Equal(t, "1.4.0", fields.String("version"))
}

func TestCreateEventHandlerValidation(t *testing.T) {
	ts := setupEventsServer(newFakeDocs())
	defer ts.Close()

	for _, body := range []string{`{}`, `{"name": "   "}`} {
		res, err := http.Post(ts.URL+"/api/events", "application/json", bytes.NewBufferString(body))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		var errResp response.ErrorResponse
		assert.NoError(t, json.NewDecoder(res.Body).Decode(&errResp))
		res.Body.Close()
		assert.Equal(t, "VALIDATION_ERROR", errResp.Code, "Тело %s должно быть отклонено", body)
	}
}

func TestGetEventHandlerNotFound(t *testing.T) {
	ts := setupEventsServer(newFakeDocs())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/events/NOPE11")
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var errResp response.ErrorResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&errResp))
	assert.Equal(t, "EVENT_NOT_FOUND", errResp.Code)
}

func TestDeleteEventHandler(t *testing.T) {
	docs := newFakeDocs()
	docs.records["events"] = map[string]docstore.Fields{
		"K7KWHJ": {"name": "Поход в горы", "version": "1.4.0"},
	}
	ts := setupEventsServer(docs)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/events/K7KWHJ", nil)
	assert.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var success response.SuccessResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&success))
	assert.Equal(t, "Событие удалено", success.Message)

	_, ok := docs.records["events"]["K7KWHJ"]
	assert.False(t, ok, "Запись события должна быть удалена")

	// Повторное удаление — событие уже не существует.
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/events/K7KWHJ", nil)
	res, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
