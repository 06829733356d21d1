package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

const achievementTable = "achievements"

// achievementRepo implements AchievementRepo.
type achievementRepo struct {
	db *sqlx.DB
}

type achievementRow struct {
	ID          string `db:"id"`
	Position    int    `db:"position"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Progress    int    `db:"progress"`
	MaxProgress int    `db:"max_progress"`
	Unlocked    bool   `db:"unlocked"`
}

var achievementColumns = []string{
	"id", "position", "title", "description", "progress", "max_progress", "unlocked",
}

func selectAchievements() *entsql.Selector {
	return stmt.Select(achievementColumns...).From(stmt.Table(achievementTable))
}

func (r *achievementRepo) SeedIfEmpty(ctx context.Context, defs []Achievement) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr("seed achievements", err)
	}
	defer tx.Rollback()

	var n int
	if err := getRow(ctx, tx, &n, stmt.Select().Count().From(stmt.Table(achievementTable))); err != nil {
		return wrapErr("seed achievements", err)
	}
	if n > 0 || len(defs) == 0 {
		return nil
	}

	q := stmt.Insert(achievementTable).Columns(achievementColumns...)
	for _, a := range defs {
		q.Values(a.ID, a.Position, a.Title, a.Description, a.Progress, a.MaxProgress, a.Unlocked)
	}
	if _, err := execStmt(ctx, tx, q); err != nil {
		return wrapErr("seed achievements", err)
	}
	return wrapErr("seed achievements", tx.Commit())
}

func (r *achievementRepo) All(ctx context.Context) ([]Achievement, error) {
	var rows []achievementRow
	if err := selectRows(ctx, r.db, &rows, selectAchievements().OrderBy("position", "id")); err != nil {
		return nil, wrapErr("list achievements", err)
	}
	out := make([]Achievement, len(rows))
	for i, row := range rows {
		out[i] = Achievement(row)
	}
	return out, nil
}

func (r *achievementRepo) Get(ctx context.Context, id string) (*Achievement, error) {
	var row achievementRow
	err := getRow(ctx, r.db, &row, selectAchievements().Where(entsql.EQ("id", id)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get achievement", err)
	}
	a := Achievement(row)
	return &a, nil
}

func (r *achievementRepo) Put(ctx context.Context, a Achievement) error {
	q := stmt.Update(achievementTable).
		Set("title", a.Title).
		Set("description", a.Description).
		Set("position", a.Position).
		Set("progress", a.Progress).
		Set("max_progress", a.MaxProgress).
		Set("unlocked", a.Unlocked).
		Where(entsql.EQ("id", a.ID))
	res, err := execStmt(ctx, r.db, q)
	if err != nil {
		return wrapErr("put achievement", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("put achievement", err)
	}
	if n == 0 {
		return wrapErr("put achievement", fmt.Errorf("unknown achievement %q", a.ID))
	}
	return nil
}
