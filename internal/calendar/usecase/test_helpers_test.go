package usecase

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/repository"
	"calendar-assistant/internal/calendar/repository/sqlstore"
	"calendar-assistant/internal/model"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/gcalendar"
	"calendar-assistant/pkg/log"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Monday 2025-06-02 09:00 UTC.
var testNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

var (
	alice = model.Scope{UserID: "alice", Username: "alice"}
	bob   = model.Scope{UserID: "bob", Username: "bob"}
)

// fakeCompleter returns a canned reply and records what it was asked.
type fakeCompleter struct {
	mu     sync.Mutex
	reply  string
	err    error
	block  bool
	calls  int
	system string
	user   string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.system, f.user = system, user
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeMirror records mirrored writes.
type fakeMirror struct {
	mu      sync.Mutex
	err     error
	upserts []gcalendar.EventRequest
	deletes []string
}

func (m *fakeMirror) UpsertEvent(ctx context.Context, req gcalendar.EventRequest) (*gcalendar.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts = append(m.upserts, req)
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: req.ID}, nil
}

func (m *fakeMirror) DeleteEvent(ctx context.Context, calendarID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, id)
	return m.err
}

// failingRepo fails every call with a backend-looking error.
type failingRepo struct{}

var errBackend = errors.New("pq: connection refused to 10.0.0.5:5432")

func (failingRepo) CreateEvent(context.Context, repository.CreateEventOptions) (calendar.Event, error) {
	return calendar.Event{}, errBackend
}
func (failingRepo) GetOneEvent(context.Context, repository.GetOneEventOptions) (calendar.Event, error) {
	return calendar.Event{}, errBackend
}
func (failingRepo) ListEvents(context.Context, repository.ListEventsOptions) ([]calendar.Event, error) {
	return nil, errBackend
}
func (failingRepo) UpdateEvent(context.Context, repository.UpdateEventOptions) (calendar.Event, error) {
	return calendar.Event{}, errBackend
}
func (failingRepo) DeleteEvent(context.Context, repository.DeleteEventOptions) (bool, error) {
	return false, errBackend
}

func newTestStore(t *testing.T) repository.Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlstore.EnsureSchema(context.Background(), db))
	return sqlstore.New(db, sqlstore.DialectSQLite, log.NewNop())
}

type fixture struct {
	uc     *implUseCase
	repo   repository.Repository
	llm    *fakeCompleter
	mirror *fakeMirror
}

func newFixture(t *testing.T, reply string) *fixture {
	t.Helper()
	return newFixtureWithRepo(t, reply, newTestStore(t))
}

func newFixtureWithRepo(t *testing.T, reply string, repo repository.Repository) *fixture {
	t.Helper()

	dm, err := datemath.NewParser("UTC")
	require.NoError(t, err)

	llm := &fakeCompleter{reply: reply}
	mirror := &fakeMirror{}
	uc := New(log.NewNop(), llm, repo, mirror, dm, Config{
		ModelTimeout:      time.Second,
		ContextPastDays:   7,
		ContextFutureDays: 30,
		ContextMaxEvents:  20,
	})
	uc.now = func() time.Time { return testNow }

	return &fixture{uc: uc, repo: repo, llm: llm, mirror: mirror}
}

// seed stores an event for owner directly, bypassing the model.
func (f *fixture) seed(t *testing.T, owner, title string, start time.Time) calendar.Event {
	t.Helper()
	ev, err := f.repo.CreateEvent(context.Background(), repository.CreateEventOptions{
		ID:      uuid.NewString(),
		OwnerID: owner,
		Title:   title,
		Start:   start,
		End:     start.Add(time.Hour),
	})
	require.NoError(t, err)
	return ev
}

func (f *fixture) get(t *testing.T, owner, id string) calendar.Event {
	t.Helper()
	ev, err := f.repo.GetOneEvent(context.Background(), repository.GetOneEventOptions{ID: id, OwnerID: owner})
	require.NoError(t, err)
	return ev
}
