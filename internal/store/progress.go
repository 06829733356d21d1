package store

import (
	"context"
	"database/sql"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

const masteryTable = "mastery_records"

// progressRepo implements ProgressRepo on SQLite.
type progressRepo struct {
	db *sqlx.DB
}

type masteryRow struct {
	WordKey      string        `db:"word_key"`
	Headword     string        `db:"headword"`
	Meaning      string        `db:"meaning"`
	Bucket       int           `db:"bucket"`
	SeenCount    int           `db:"seen_count"`
	CorrectCount int           `db:"correct_count"`
	WrongCount   int           `db:"wrong_count"`
	LastSeenAt   sql.NullInt64 `db:"last_seen_at"`
	NextReviewAt sql.NullInt64 `db:"next_review_at"`
}

var masteryColumns = []string{
	"word_key", "headword", "meaning", "bucket", "seen_count",
	"correct_count", "wrong_count", "last_seen_at", "next_review_at",
}

// masteryUpdated are replaced on conflict. The stored headword and meaning
// keep the spelling of the first answer.
var masteryUpdated = []string{
	"bucket", "seen_count", "correct_count", "wrong_count",
	"last_seen_at", "next_review_at",
}

func selectMastery() *entsql.Selector {
	return stmt.Select(masteryColumns...).From(stmt.Table(masteryTable))
}

func (r *progressRepo) Get(ctx context.Context, key string) (*MasteryRecord, error) {
	var row masteryRow
	err := getRow(ctx, r.db, &row, selectMastery().Where(entsql.EQ("word_key", key)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get mastery record", err)
	}
	return row.record(), nil
}

func (r *progressRepo) All(ctx context.Context) ([]*MasteryRecord, error) {
	var rows []masteryRow
	if err := selectRows(ctx, r.db, &rows, selectMastery().OrderBy("word_key")); err != nil {
		return nil, wrapErr("list mastery records", err)
	}
	return toRecords(rows), nil
}

func (r *progressRepo) Upsert(ctx context.Context, rec *MasteryRecord) error {
	row := rowFromRecord(rec)
	q := stmt.Insert(masteryTable).
		Columns(masteryColumns...).
		Values(row.WordKey, row.Headword, row.Meaning, row.Bucket, row.SeenCount,
			row.CorrectCount, row.WrongCount, row.LastSeenAt, row.NextReviewAt).
		OnConflict(
			entsql.ConflictColumns("word_key"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range masteryUpdated {
					u.SetExcluded(c)
				}
			}),
		)
	_, err := execStmt(ctx, r.db, q)
	return wrapErr("upsert mastery record", err)
}

// Due orders by bucket, then by word key so ties keep a stable order.
func (r *progressRepo) Due(ctx context.Context, now time.Time, limit int) ([]*MasteryRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	q := selectMastery().
		Where(entsql.Or(
			entsql.IsNull("next_review_at"),
			entsql.LTE("next_review_at", now.UnixMilli()),
		)).
		OrderBy(entsql.Asc("bucket"), entsql.Asc("word_key")).
		Limit(limit)

	var rows []masteryRow
	if err := selectRows(ctx, r.db, &rows, q); err != nil {
		return nil, wrapErr("query due words", err)
	}
	return toRecords(rows), nil
}

func (row masteryRow) record() *MasteryRecord {
	return &MasteryRecord{
		Headword:     row.Headword,
		Meaning:      row.Meaning,
		Bucket:       row.Bucket,
		SeenCount:    row.SeenCount,
		CorrectCount: row.CorrectCount,
		WrongCount:   row.WrongCount,
		LastSeenAt:   fromMillis(row.LastSeenAt),
		NextReviewAt: fromMillis(row.NextReviewAt),
	}
}

func rowFromRecord(rec *MasteryRecord) masteryRow {
	return masteryRow{
		WordKey:      rec.Key(),
		Headword:     rec.Headword,
		Meaning:      rec.Meaning,
		Bucket:       rec.Bucket,
		SeenCount:    rec.SeenCount,
		CorrectCount: rec.CorrectCount,
		WrongCount:   rec.WrongCount,
		LastSeenAt:   toMillis(rec.LastSeenAt),
		NextReviewAt: toMillis(rec.NextReviewAt),
	}
}

func toRecords(rows []masteryRow) []*MasteryRecord {
	out := make([]*MasteryRecord, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out
}

func toMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64)
	return &t
}
