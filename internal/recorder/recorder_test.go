package recorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/spacedrep"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

type mockProgressRepo struct {
	records   map[string]*store.MasteryRecord
	getErr    error
	upsertErr error
	upserts   int
}

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{records: make(map[string]*store.MasteryRecord)}
}

func (m *mockProgressRepo) Get(_ context.Context, key string) (*store.MasteryRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if r, ok := m.records[key]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *mockProgressRepo) All(context.Context) ([]*store.MasteryRecord, error) { return nil, nil }

func (m *mockProgressRepo) Upsert(_ context.Context, rec *store.MasteryRecord) error {
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	cp := *rec
	m.records[rec.Key()] = &cp
	return nil
}

func (m *mockProgressRepo) Due(context.Context, time.Time, int) ([]*store.MasteryRecord, error) {
	return nil, nil
}

type mockEventRepo struct {
	events []store.PracticeEvent
	err    error
}

func (m *mockEventRepo) AppendPracticeEvent(_ context.Context, ev *store.PracticeEvent) error {
	if m.err != nil {
		return m.err
	}
	ev.ID = int64(len(m.events) + 1)
	m.events = append(m.events, *ev)
	return nil
}

func (m *mockEventRepo) EventsByDate(context.Context, string) ([]store.PracticeEvent, error) {
	return nil, nil
}

func (m *mockEventRepo) EventsSince(context.Context, time.Time) ([]store.PracticeEvent, error) {
	return nil, nil
}

func (m *mockEventRepo) Recent(context.Context, int) ([]store.PracticeEvent, error) { return nil, nil }

func (m *mockEventRepo) Count(context.Context) (int, error) { return len(m.events), nil }

var now = time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)

func newTestRecorder() (*Recorder, *mockProgressRepo, *mockEventRepo) {
	p, e := newMockProgressRepo(), &mockEventRepo{}
	return New(p, e).WithClock(func() time.Time { return now }), p, e
}

func TestRecordAnswerFirstCorrect(t *testing.T) {
	r, progress, events := newTestRecorder()
	w := words.New("apple", "苹果")

	rec, err := r.RecordAnswer(context.Background(), Answer{
		Word: w, Library: "fruit", Correct: true, Mode: "dictation", SessionID: "sess-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rec.Bucket)
	assert.Equal(t, 1, rec.SeenCount)
	assert.Equal(t, 1, rec.CorrectCount)
	assert.Equal(t, 0, rec.WrongCount)
	assert.True(t, rec.LastSeenAt.Equal(now))
	assert.True(t, rec.NextReviewAt.Equal(now.Add(3*24*time.Hour)))

	stored := progress.records[w.Key()]
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Bucket)

	require.Len(t, events.events, 1)
	ev := events.events[0]
	assert.Equal(t, "2025-06-01", ev.Day)
	assert.True(t, ev.Timestamp.Equal(now))
	assert.Equal(t, "apple", ev.Headword)
	assert.Equal(t, "苹果", ev.Meaning)
	assert.Equal(t, "fruit", ev.Library)
	assert.True(t, ev.Correct)
	assert.Equal(t, 5, ev.CharCount)
	assert.Equal(t, "dictation", ev.Mode)
	assert.Equal(t, "sess-1", ev.SessionID)
}

func TestRecordAnswerSequence(t *testing.T) {
	r, progress, events := newTestRecorder()
	w := words.New("pear", "梨")
	ctx := context.Background()

	outcomes := []struct {
		correct bool
		bucket  int
	}{
		{true, 1}, {true, 2}, {true, 3}, {true, 4}, {true, 4}, {false, 3}, {false, 2},
		{false, 1}, {false, 0}, {false, 0},
	}
	for i, o := range outcomes {
		rec, err := r.RecordAnswer(ctx, Answer{Word: w, Correct: o.correct})
		require.NoError(t, err)
		assert.Equal(t, o.bucket, rec.Bucket, "answer %d", i)
		gap := rec.NextReviewAt.Sub(*rec.LastSeenAt)
		assert.Equal(t, time.Duration(spacedrep.IntervalDays[rec.Bucket])*24*time.Hour, gap)
	}

	stored := progress.records[w.Key()]
	assert.Equal(t, 10, stored.SeenCount)
	assert.Equal(t, stored.SeenCount, stored.CorrectCount+stored.WrongCount)
	assert.Len(t, events.events, 10)
}

func TestRecordAnswerCharCountIsRunes(t *testing.T) {
	r, _, events := newTestRecorder()
	_, err := r.RecordAnswer(context.Background(), Answer{Word: words.New("café", "咖啡馆")})
	require.NoError(t, err)
	assert.Equal(t, 4, events.events[0].CharCount)
}

func TestRecordAnswerEventFailureStillSavesRecord(t *testing.T) {
	r, progress, events := newTestRecorder()
	events.err = &store.StorageError{Op: "append practice event", Err: errors.New("disk full")}
	w := words.New("plum", "李子")

	rec, err := r.RecordAnswer(context.Background(), Answer{Word: w, Correct: true})
	require.Error(t, err)
	assert.True(t, store.IsStorageError(err))
	assert.NotNil(t, rec)
	assert.NotNil(t, progress.records[w.Key()])
}

func TestRecordAnswerUpsertFailureStillAppendsEvent(t *testing.T) {
	r, progress, events := newTestRecorder()
	progress.upsertErr = errors.New("readonly")

	_, err := r.RecordAnswer(context.Background(), Answer{Word: words.New("fig", "无花果")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save mastery record")
	assert.Len(t, events.events, 1)
}

func TestRecordAnswerLoadFailureSkipsUpsert(t *testing.T) {
	r, progress, events := newTestRecorder()
	progress.getErr = errors.New("io")

	_, err := r.RecordAnswer(context.Background(), Answer{Word: words.New("fig", "无花果")})
	require.Error(t, err)
	assert.Zero(t, progress.upserts)
	assert.Len(t, events.events, 1)
}

func TestRecordAnswerJoinsBothFailures(t *testing.T) {
	r, progress, events := newTestRecorder()
	upErr := errors.New("upsert failed")
	evErr := errors.New("append failed")
	progress.upsertErr = upErr
	events.err = evErr

	_, err := r.RecordAnswer(context.Background(), Answer{Word: words.New("fig", "无花果")})
	assert.ErrorIs(t, err, upErr)
	assert.ErrorIs(t, err, evErr)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-06-01", DayKey(now))
	assert.Equal(t, "2025-06-02", DayKey(now.Add(24*time.Hour)))
}
