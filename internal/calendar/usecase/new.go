package usecase

import (
	"context"
	"sync"
	"time"

	"calendar-assistant/internal/calendar/intent"
	"calendar-assistant/internal/calendar/repository"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/gcalendar"
	pkgLog "calendar-assistant/pkg/log"

	"github.com/google/uuid"
)

// Completer is the generative model collaborator.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Mirror receives best-effort copies of committed mutations.
type Mirror interface {
	UpsertEvent(ctx context.Context, req gcalendar.EventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, id string) error
}

// Config tunes the command pipeline.
type Config struct {
	ModelTimeout      time.Duration
	ContextPastDays   int
	ContextFutureDays int
	ContextMaxEvents  int
	CalendarID        string
	MirrorTimeout     time.Duration
}

const (
	defaultModelTimeout     = 30 * time.Second
	defaultMirrorTimeout    = 15 * time.Second
	defaultContextMaxEvents = 50
)

type implUseCase struct {
	l         pkgLog.Logger
	llm       Completer
	repo      repository.Repository
	extractor *intent.Extractor
	mirror    Mirror
	dateMath  *datemath.Parser
	cfg       Config

	now   func() time.Time
	newID func() string

	mirrorWG sync.WaitGroup
}

// New creates a new calendar UseCase instance. mirror may be nil.
func New(
	l pkgLog.Logger,
	llm Completer,
	repo repository.Repository,
	mirror Mirror,
	dateMath *datemath.Parser,
	cfg Config,
) *implUseCase {
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = defaultModelTimeout
	}
	if cfg.MirrorTimeout <= 0 {
		cfg.MirrorTimeout = defaultMirrorTimeout
	}
	if cfg.ContextMaxEvents <= 0 {
		cfg.ContextMaxEvents = defaultContextMaxEvents
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = gcalendar.DefaultCalendarID
	}

	return &implUseCase{
		l:         l,
		llm:       llm,
		repo:      repo,
		extractor: intent.New(),
		mirror:    mirror,
		dateMath:  dateMath,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Wait blocks until in-flight mirror writes finish.
func (uc *implUseCase) Wait() {
	uc.mirrorWG.Wait()
}

func (uc *implUseCase) loc() *time.Location {
	return uc.dateMath.Location()
}
