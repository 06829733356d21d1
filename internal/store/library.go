package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abhisek/wordiz/internal/words"
)

// insertChunk bounds the rows per multi-row INSERT so large imports stay
// under SQLite's bound-parameter limit.
const insertChunk = 200

// DefaultSearchLimit caps search results when the caller passes no limit.
const DefaultSearchLimit = 200

// libraryRepo implements LibraryRepo.
type libraryRepo struct {
	db *sqlx.DB
}

type libraryRow struct {
	Name       string `db:"name"`
	ImportedAt int64  `db:"imported_at"`
	WordCount  int    `db:"word_count"`
}

type libraryWordRow struct {
	Library  string `db:"library_name"`
	Position int    `db:"position"`
	Headword string `db:"headword"`
	Meaning  string `db:"meaning"`
}

func (r *libraryRepo) Save(ctx context.Context, lib words.Library) error {
	if strings.TrimSpace(lib.Name) == "" {
		return wrapErr("save library", errors.New("library name is empty"))
	}
	importedAt := lib.ImportedAt
	if importedAt.IsZero() {
		importedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr("save library", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM library_words WHERE library_name = ?`, lib.Name); err != nil {
		return wrapErr("save library", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO libraries (name, imported_at, word_count) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			imported_at = excluded.imported_at,
			word_count  = excluded.word_count`,
		lib.Name, importedAt.UnixMilli(), len(lib.Words)); err != nil {
		return wrapErr("save library", err)
	}

	rows := make([]libraryWordRow, len(lib.Words))
	for i, w := range lib.Words {
		rows[i] = libraryWordRow{Library: lib.Name, Position: i, Headword: w.Headword, Meaning: w.Meaning}
	}
	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO library_words (library_name, position, headword, meaning)
			VALUES (:library_name, :position, :headword, :meaning)`, rows[start:end]); err != nil {
			return wrapErr("save library words", err)
		}
	}

	return wrapErr("save library", tx.Commit())
}

func (r *libraryRepo) Get(ctx context.Context, name string) (*words.Library, error) {
	var row libraryRow
	err := r.db.GetContext(ctx, &row,
		`SELECT name, imported_at, word_count FROM libraries WHERE name = ?`, name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("get library", err)
	}

	var wrows []libraryWordRow
	err = r.db.SelectContext(ctx, &wrows, `
		SELECT library_name, position, headword, meaning FROM library_words
		WHERE library_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, wrapErr("get library words", err)
	}

	lib := &words.Library{
		Name:       row.Name,
		ImportedAt: time.UnixMilli(row.ImportedAt),
		Words:      make([]words.Word, len(wrows)),
	}
	for i, w := range wrows {
		lib.Words[i] = words.New(w.Headword, w.Meaning)
	}
	return lib, nil
}

func (r *libraryRepo) All(ctx context.Context) ([]words.Library, error) {
	sums, err := r.Summaries(ctx)
	if err != nil {
		return nil, err
	}

	var wrows []libraryWordRow
	err = r.db.SelectContext(ctx, &wrows, `
		SELECT library_name, position, headword, meaning FROM library_words
		ORDER BY library_name, position`)
	if err != nil {
		return nil, wrapErr("list library words", err)
	}
	byLib := make(map[string][]words.Word, len(sums))
	for _, w := range wrows {
		byLib[w.Library] = append(byLib[w.Library], words.New(w.Headword, w.Meaning))
	}

	libs := make([]words.Library, len(sums))
	for i, s := range sums {
		libs[i] = words.Library{Name: s.Name, ImportedAt: s.ImportedAt, Words: byLib[s.Name]}
	}
	return libs, nil
}

func (r *libraryRepo) Summaries(ctx context.Context) ([]LibrarySummary, error) {
	var rows []libraryRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT name, imported_at, word_count FROM libraries ORDER BY name`)
	if err != nil {
		return nil, wrapErr("list libraries", err)
	}
	out := make([]LibrarySummary, len(rows))
	for i, row := range rows {
		out[i] = LibrarySummary{
			Name:       row.Name,
			WordCount:  row.WordCount,
			ImportedAt: time.UnixMilli(row.ImportedAt),
		}
	}
	return out, nil
}

func (r *libraryRepo) Delete(ctx context.Context, name string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr("delete library", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM library_words WHERE library_name = ?`, name); err != nil {
		return wrapErr("delete library", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM libraries WHERE name = ?`, name); err != nil {
		return wrapErr("delete library", err)
	}
	return wrapErr("delete library", tx.Commit())
}

func (r *libraryRepo) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var rows []libraryWordRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT library_name, position, headword, meaning FROM library_words
		WHERE instr(lower(headword), lower(?)) > 0 OR instr(meaning, ?) > 0
		ORDER BY library_name, position
		LIMIT ?`, query, query, limit)
	if err != nil {
		return nil, wrapErr("search words", err)
	}

	out := make([]SearchResult, len(rows))
	for i, row := range rows {
		out[i] = SearchResult{Word: words.New(row.Headword, row.Meaning), Library: row.Library}
	}
	return out, nil
}
