package store

import (
	"context"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

const eventTable = "practice_events"

// eventRepo implements EventRepo. The AUTOINCREMENT id gives every event a
// global append order, so day and window queries order by id.
type eventRepo struct {
	db *sqlx.DB
}

type eventRow struct {
	ID          int64  `db:"id"`
	Day         string `db:"day"`
	TimestampMS int64  `db:"timestamp_ms"`
	Headword    string `db:"headword"`
	Meaning     string `db:"meaning"`
	Library     string `db:"library_name"`
	Correct     bool   `db:"correct"`
	CharCount   int    `db:"char_count"`
	SessionID   string `db:"session_id"`
	Mode        string `db:"mode"`
}

var eventColumns = []string{
	"id", "day", "timestamp_ms", "headword", "meaning", "library_name",
	"correct", "char_count", "session_id", "mode",
}

func selectEvents() *entsql.Selector {
	return stmt.Select(eventColumns...).From(stmt.Table(eventTable))
}

func (r *eventRepo) AppendPracticeEvent(ctx context.Context, ev *PracticeEvent) error {
	q := stmt.Insert(eventTable).
		Columns(eventColumns[1:]...).
		Values(ev.Day, ev.Timestamp.UnixMilli(), ev.Headword, ev.Meaning,
			ev.Library, ev.Correct, ev.CharCount, ev.SessionID, ev.Mode)
	res, err := execStmt(ctx, r.db, q)
	if err != nil {
		return wrapErr("append practice event", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wrapErr("append practice event", err)
	}
	ev.ID = id
	return nil
}

func (r *eventRepo) EventsByDate(ctx context.Context, day string) ([]PracticeEvent, error) {
	var rows []eventRow
	q := selectEvents().Where(entsql.EQ("day", day)).OrderBy("id")
	if err := selectRows(ctx, r.db, &rows, q); err != nil {
		return nil, wrapErr("query events by date", err)
	}
	return toEvents(rows), nil
}

func (r *eventRepo) EventsSince(ctx context.Context, since time.Time) ([]PracticeEvent, error) {
	var rows []eventRow
	q := selectEvents().Where(entsql.GTE("timestamp_ms", since.UnixMilli())).OrderBy("id")
	if err := selectRows(ctx, r.db, &rows, q); err != nil {
		return nil, wrapErr("query events since", err)
	}
	return toEvents(rows), nil
}

func (r *eventRepo) Recent(ctx context.Context, limit int) ([]PracticeEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rows []eventRow
	q := selectEvents().OrderBy(entsql.Desc("id")).Limit(limit)
	if err := selectRows(ctx, r.db, &rows, q); err != nil {
		return nil, wrapErr("query recent events", err)
	}
	return toEvents(rows), nil
}

func (r *eventRepo) Count(ctx context.Context) (int, error) {
	var n int
	q := stmt.Select().Count().From(stmt.Table(eventTable))
	if err := getRow(ctx, r.db, &n, q); err != nil {
		return 0, wrapErr("count events", err)
	}
	return n, nil
}

func toEvents(rows []eventRow) []PracticeEvent {
	out := make([]PracticeEvent, len(rows))
	for i, row := range rows {
		out[i] = PracticeEvent{
			ID:        row.ID,
			Day:       row.Day,
			Timestamp: time.UnixMilli(row.TimestampMS),
			Headword:  row.Headword,
			Meaning:   row.Meaning,
			Library:   row.Library,
			Correct:   row.Correct,
			CharCount: row.CharCount,
			SessionID: row.SessionID,
			Mode:      row.Mode,
		}
	}
	return out
}
