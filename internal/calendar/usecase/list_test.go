package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/validator"
	"calendar-assistant/internal/model"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	f := newFixture(t, "")
	first := f.seed(t, "alice", "First", testNow.Add(time.Hour))
	second := f.seed(t, "alice", "Second", testNow.Add(3*time.Hour))
	f.seed(t, "bob", "Bob's", testNow.Add(2*time.Hour))

	out, err := f.uc.List(context.Background(), alice, calendar.ListEventsInput{})
	require.NoError(t, err)
	require.Len(t, out.Events, 2)
	assert.Equal(t, first.ID, out.Events[0].ID)
	assert.Equal(t, second.ID, out.Events[1].ID)
	assert.Equal(t, defaultListLimit, out.Limit)

	out, err = f.uc.List(context.Background(), alice, calendar.ListEventsInput{
		From: testNow.Add(2 * time.Hour),
		To:   testNow.Add(5 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, second.ID, out.Events[0].ID)

	out, err = f.uc.List(context.Background(), alice, calendar.ListEventsInput{Limit: 1000, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, out.Limit)
	require.Len(t, out.Events, 1)
	assert.Equal(t, second.ID, out.Events[0].ID)
}

func TestList_Rejections(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.uc.List(context.Background(), alice, calendar.ListEventsInput{From: testNow, To: testNow})
	assert.ErrorIs(t, err, calendar.ErrInvalidInput)

	_, err = f.uc.List(context.Background(), alice, calendar.ListEventsInput{Offset: -1})
	assert.ErrorIs(t, err, calendar.ErrInvalidInput)

	_, err = f.uc.List(context.Background(), model.Scope{}, calendar.ListEventsInput{})
	assert.ErrorIs(t, err, calendar.ErrUnauthorized)
}

func TestDetail(t *testing.T) {
	f := newFixture(t, "")
	ev := f.seed(t, "alice", "Standup", testNow.Add(time.Hour))

	out, err := f.uc.Detail(context.Background(), alice, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", out.Event.Title)

	_, err = f.uc.Detail(context.Background(), bob, ev.ID)
	assert.ErrorIs(t, err, calendar.ErrNotFound)

	_, err = f.uc.Detail(context.Background(), alice, "not-a-uuid")
	var verr *validator.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "event_id", verr.Field)
}

func TestExport(t *testing.T) {
	f := newFixture(t, "")
	f.seed(t, "alice", "Standup", testNow.Add(time.Hour))
	f.seed(t, "alice", "Retro", testNow.Add(26*time.Hour))
	f.seed(t, "bob", "Bob's", testNow.Add(2*time.Hour))

	out, err := f.uc.Export(context.Background(), alice, calendar.ExportInput{})
	require.NoError(t, err)
	assert.Equal(t, exportFilename, out.Filename)

	cal, err := ical.ParseCalendar(bytes.NewReader(out.Content))
	require.NoError(t, err)

	var titles []string
	for _, ve := range cal.Events() {
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			titles = append(titles, p.Value)
		}
	}
	assert.ElementsMatch(t, []string{"Standup", "Retro"}, titles)

	_, err = f.uc.Export(context.Background(), alice, calendar.ExportInput{From: testNow, To: testNow.Add(-time.Hour)})
	assert.ErrorIs(t, err, calendar.ErrInvalidInput)
}
