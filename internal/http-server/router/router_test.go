package router

import (
	"bytes"
	"context"
	"encoding/json"
	"eventManager/internal/config"
	"eventManager/internal/lib/logger/handlers/slogdiscard"
	"eventManager/internal/lib/password"
	"eventManager/internal/lib/token"
	"eventManager/internal/models"
	"eventManager/internal/services/auth"
	"eventManager/internal/storage"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStorage is an in-memory stand-in for storage/postgres.
type memStorage struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	events map[int64]*models.Event
	nextID int64
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:  make(map[int64]*models.User),
		events: make(map[int64]*models.Event),
	}
}

func (s *memStorage) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStorage) SaveUser(_ context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, storage.ErrEmailExists
		}
	}

	now := time.Now().UTC()
	u := &models.User{ID: s.id(), Name: name, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: now, UpdatedAt: now}
	s.users[u.ID] = u

	cp := *u
	return &cp, nil
}

func (s *memStorage) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, storage.ErrUserNotFound
}

func (s *memStorage) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	cp := *u
	return &cp, nil
}

func (s *memStorage) CreateEvent(_ context.Context, in models.EventInput) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	e := &models.Event{
		ID:          s.id(),
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.events[e.ID] = e

	cp := *e
	return &cp, nil
}

func (s *memStorage) Event(_ context.Context, id int64) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	cp := *e
	return &cp, nil
}

func (s *memStorage) ListEvents(_ context.Context, skip, limit int) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if skip >= len(all) {
		return []models.Event{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}

	return all, nil
}

func (s *memStorage) UpdateEvent(_ context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	merged := *e
	if !patch.Empty() {
		patch.Apply(&merged)
		if !merged.ScheduleValid() {
			return nil, storage.ErrInvalidSchedule
		}
		merged.UpdatedAt = time.Now().UTC()
		s.events[id] = &merged
	}

	cp := merged
	return &cp, nil
}

func (s *memStorage) DeleteEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return storage.ErrEventNotFound
	}
	delete(s.events, id)

	return nil
}

func (s *memStorage) Ping(context.Context) error {
	return nil
}

type testServer struct {
	t     *testing.T
	srv   *httptest.Server
	store *memStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	store := newMemStorage()

	hasher, err := password.New(bcrypt.MinCost)
	require.NoError(t, err)

	tokens, err := token.New("e2e-secret", 30*time.Minute, "event-manager")
	require.NoError(t, err)

	authenticator, err := auth.New(log, store, hasher, tokens)
	require.NoError(t, err)

	h := New(log, Deps{
		Storage:  store,
		Auth:     authenticator,
		Tokens:   tokens,
		TokenTTL: 30 * time.Minute,
		CORS:     config.CORS{AllowedOrigins: []string{"http://localhost:3000"}},
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &testServer{t: t, srv: srv, store: store}
}

// do sends a JSON request and decodes the response body, which is either a
// JSON object or array.
func (ts *testServer) do(method, path, tok string, body any) (int, any) {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := ts.srv.Client().Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	var out any
	require.NoError(ts.t, json.NewDecoder(resp.Body).Decode(&out))

	return resp.StatusCode, out
}

func (ts *testServer) register(name, email, pass, role string) {
	ts.t.Helper()

	status, body := ts.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": pass, "role": role,
	})
	require.Equal(ts.t, http.StatusCreated, status, body)
}

func (ts *testServer) login(email, pass string) string {
	ts.t.Helper()

	status, body := ts.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": pass,
	})
	require.Equal(ts.t, http.StatusOK, status, body)

	obj := object(ts.t, body)
	require.Equal(ts.t, "bearer", obj["token_type"])
	require.Equal(ts.t, float64(1800), obj["expires_in"])
	require.NotContains(ts.t, obj, "status")

	tok, ok := obj["access_token"].(string)
	require.True(ts.t, ok)

	return tok
}

func eventBody(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "integration run",
		"start_date":  "2026-05-01T10:00:00Z",
		"end_date":    "2026-05-01T12:00:00Z",
		"location":    "Lisbon",
	}
}

func object(t *testing.T, body any) map[string]any {
	t.Helper()

	obj, ok := body.(map[string]any)
	require.True(t, ok, "expected a JSON object, got %T", body)

	return obj
}

func array(t *testing.T, body any) []any {
	t.Helper()

	arr, ok := body.([]any)
	require.True(t, ok, "expected a JSON array, got %T", body)

	return arr
}

func eventID(t *testing.T, body any) int64 {
	t.Helper()

	id, ok := object(t, body)["id"].(float64)
	require.True(t, ok, body)

	return int64(id)
}

func TestEventLifecycle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	ts.register("Root", "root@example.com", "rootpass", "admin")
	admin := ts.login("root@example.com", "rootpass")

	status, body := ts.do(http.MethodPost, "/events", admin, eventBody("Launch"))
	require.Equal(t, http.StatusCreated, status, body)
	id := eventID(t, body)
	path := "/events/" + strconv.FormatInt(id, 10)

	status, body = ts.do(http.MethodGet, "/events", "", nil)
	require.Equal(t, http.StatusOK, status)
	events := array(t, body)
	require.Len(t, events, 1)
	assert.Equal(t, "Launch", object(t, events[0])["name"])
	assert.Equal(t, float64(id), object(t, events[0])["id"])

	status, body = ts.do(http.MethodPut, path, admin, map[string]any{"location": "Porto"})
	require.Equal(t, http.StatusOK, status, body)
	updated := object(t, body)
	assert.Equal(t, "Porto", updated["location"])
	assert.Equal(t, "Launch", updated["name"])
	assert.Equal(t, "integration run", updated["description"])

	status, body = ts.do(http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"message": "Event deleted successfully"}, body)

	status, body = ts.do(http.MethodGet, "/events", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, array(t, body))

	status, _ = ts.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAttendeeCannotManageEvents(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	ts.register("Root", "root@example.com", "rootpass", "admin")
	ts.register("Ann", "ann@example.com", "annpass", "")
	admin := ts.login("root@example.com", "rootpass")
	attendee := ts.login("ann@example.com", "annpass")

	status, body := ts.do(http.MethodPost, "/events", admin, eventBody("Launch"))
	require.Equal(t, http.StatusCreated, status, body)
	path := fmt.Sprintf("/events/%d", eventID(t, body))

	status, body = ts.do(http.MethodPost, "/events", attendee, eventBody("Nope"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "admin privileges required", object(t, body)["error"])

	status, _ = ts.do(http.MethodPut, path, attendee, map[string]any{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = ts.do(http.MethodDelete, path, attendee, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = ts.do(http.MethodGet, path, attendee, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Launch", object(t, body)["name"])

	status, body = ts.do(http.MethodGet, "/auth/me", attendee, nil)
	require.Equal(t, http.StatusOK, status)
	me := object(t, body)
	assert.Equal(t, "attendee", me["role"])
	assert.Equal(t, "ann@example.com", me["email"])
	assert.NotContains(t, me, "password_hash")
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	status, body := ts.do(http.MethodPost, "/events", "", eventBody("Launch"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "not authenticated", object(t, body)["error"])

	status, _ = ts.do(http.MethodPost, "/events", "garbage", eventBody("Launch"))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	ts.store.mu.Lock()
	assert.Empty(t, ts.store.events)
	ts.store.mu.Unlock()
}

func TestLoginFailuresLookAlike(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register("Ann", "ann@example.com", "annpass", "")

	wrongStatus, wrongBody := ts.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ann@example.com", "password": "nope",
	})
	unknownStatus, unknownBody := ts.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, wrongStatus, unknownStatus)
	assert.Equal(t, wrongBody, unknownBody)

	status, body := ts.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ann again", "email": "ann@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email already registered", object(t, body)["error"])
}

func TestDeletedUserTokenRejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register("Root", "root@example.com", "rootpass", "admin")
	admin := ts.login("root@example.com", "rootpass")

	ts.store.mu.Lock()
	for id := range ts.store.users {
		delete(ts.store.users, id)
	}
	ts.store.mu.Unlock()

	status, body := ts.do(http.MethodPost, "/events", admin, eventBody("Launch"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "could not validate credentials", object(t, body)["error"])
}

func TestUpdateScheduleAndMissing(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register("Root", "root@example.com", "rootpass", "admin")
	admin := ts.login("root@example.com", "rootpass")

	status, body := ts.do(http.MethodPost, "/events", admin, eventBody("Launch"))
	require.Equal(t, http.StatusCreated, status, body)
	path := fmt.Sprintf("/events/%d", eventID(t, body))

	status, _ = ts.do(http.MethodPut, path, admin, map[string]any{"end_date": "2026-04-01T00:00:00Z"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = ts.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2026-05-01T12:00:00Z", object(t, body)["end_date"])

	status, _ = ts.do(http.MethodPut, "/events/9999", admin, map[string]any{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = ts.do(http.MethodGet, "/events", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, array(t, body), 1)
}

func TestHealthAndCORS(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	status, body := ts.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "healthy"}, body)

	status, body = ts.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"message": "Welcome to Event Management API"}, body)

	req, err := http.NewRequest(http.MethodOptions, ts.srv.URL+"/events", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
