package store

import (
	"context"
	"fmt"
	"strconv"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

const settingsTable = "settings"

// settingsRepo implements SettingsRepo on the key/value settings table.
type settingsRepo struct {
	db *sqlx.DB
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	q := stmt.Select("value").From(stmt.Table(settingsTable)).Where(entsql.EQ("key", key))
	err := getRow(ctx, r.db, &v, q)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, wrapErr("get setting "+key, err)
	}
	return v, true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	q := stmt.Insert(settingsTable).
		Columns("key", "value").
		Values(key, value).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues())
	_, err := execStmt(ctx, r.db, q)
	return wrapErr("set setting "+key, err)
}

// GetInt returns the integer setting, or def when it is unset.
func (r *settingsRepo) GetInt(ctx context.Context, key string, def int) (int, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, wrapErr("get setting "+key, fmt.Errorf("not an integer: %q", v))
	}
	return n, nil
}

func (r *settingsRepo) SetInt(ctx context.Context, key string, value int) error {
	return r.Set(ctx, key, strconv.Itoa(value))
}
