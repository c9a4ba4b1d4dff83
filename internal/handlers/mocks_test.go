package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"freeform-backend/internal/auth"
	"freeform-backend/internal/errs"
	"freeform-backend/internal/middleware"
	"freeform-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const testSecret = "test-secret"

type mockBoardRepo struct {
	mu     sync.RWMutex
	boards map[uuid.UUID][]models.Board
	fail   error
}

func newMockBoardRepo() *mockBoardRepo {
	return &mockBoardRepo{boards: make(map[uuid.UUID][]models.Board)}
}

func (m *mockBoardRepo) GetLatestBoard(userID uuid.UUID) (*models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.fail != nil {
		return nil, m.fail
	}
	rows := m.boards[userID]
	if len(rows) == 0 {
		return nil, errs.ErrBoardNotFound
	}
	latest := rows[0]
	for _, b := range rows[1:] {
		if b.UpdatedAt.After(latest.UpdatedAt) {
			latest = b
		}
	}
	return &latest, nil
}

func (m *mockBoardRepo) UpsertBoard(userID uuid.UUID, snapshot datatypes.JSON, snapshotURL models.NullableString) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}
	now := time.Now()
	rows := m.boards[userID]
	if len(rows) == 0 {
		m.boards[userID] = []models.Board{{
			ID:          uuid.New(),
			UserID:      userID,
			Snapshot:    snapshot,
			SnapshotURL: snapshotURL.Value,
			CreatedAt:   now,
			UpdatedAt:   now,
		}}
		return nil
	}
	rows[0].Snapshot = snapshot
	rows[0].UpdatedAt = now
	if snapshotURL.Set {
		rows[0].SnapshotURL = snapshotURL.Value
	}
	return nil
}

// seed stores a row as is, duplicates included
func (m *mockBoardRepo) seed(b models.Board) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards[b.UserID] = append(m.boards[b.UserID], b)
}

func (m *mockBoardRepo) count(userID uuid.UUID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.boards[userID])
}

type mockProfileRepo struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]models.Profile
	fail     error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[uuid.UUID]models.Profile)}
}

func (m *mockProfileRepo) GetByAPIToken(token string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.fail != nil {
		return nil, m.fail
	}
	for _, p := range m.profiles {
		if p.APIToken == token {
			p := p
			return &p, nil
		}
	}
	return nil, errs.ErrProfileNotFound
}

func (m *mockProfileRepo) GetOrCreateProfile(userID uuid.UUID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return nil, m.fail
	}
	p, ok := m.profiles[userID]
	if !ok {
		p = models.Profile{ID: userID, APIToken: "fbt_" + uuid.NewString()}
		m.profiles[userID] = p
	}
	return &p, nil
}

type mockObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    error
}

func (m *mockObjectStore) Upload(_ context.Context, path string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return "", m.fail
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[path] = data
	return "https://img.test/" + path, nil
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (m *memoryRevocations) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = map[string]bool{}
	}
	m.revoked[tokenID] = true
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

var errStorage = errors.New("connection refused")

type testEnv struct {
	app      *fiber.App
	boards   *mockBoardRepo
	profiles *mockProfileRepo
	store    *mockObjectStore
	sessions *auth.SessionManager
}

func setupApp(withStore bool) *testEnv {
	env := &testEnv{
		app:      fiber.New(),
		boards:   newMockBoardRepo(),
		profiles: newMockProfileRepo(),
		sessions: auth.NewSessionManager([]byte(testSecret), &memoryRevocations{}),
	}
	boardHandler := NewBoardHandler(env.boards, nil)
	if withStore {
		env.store = &mockObjectStore{}
		boardHandler = NewBoardHandler(env.boards, env.store)
	}
	snapshotHandler := NewSnapshotHandler(env.profiles, env.boards)
	profileHandler := NewProfileHandler(env.profiles)
	sessionHandler := NewSessionHandler(env.sessions)

	requireSession := middleware.RequireSession(env.sessions)
	env.app.Get("/api/snapshot", snapshotHandler.GetSnapshot)
	env.app.Get("/api/board", requireSession, boardHandler.GetBoard)
	env.app.Post("/api/board", requireSession, boardHandler.SaveBoard)
	env.app.Put("/api/board/image", requireSession, boardHandler.UploadImage)
	env.app.Get("/api/profile", requireSession, profileHandler.GetProfile)
	env.app.Post("/api/session/logout", requireSession, sessionHandler.Logout)
	return env
}

func (e *testEnv) token(userID uuid.UUID) string {
	token, err := e.sessions.Issue(userID, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

func newCookieRequest(path, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	return req
}
