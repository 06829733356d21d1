package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/wordiz/internal/stats"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// BackupVersion is written into every export file.
const BackupVersion = "1.0"

// Backup is the export file layout.
type Backup struct {
	Libraries     []words.Library     `json:"libraries"`
	ProgressStats stats.LearningStats `json:"progressStats"`
	ExportDate    time.Time           `json:"exportDate"`
	Version       string              `json:"version"`
}

// StatsSource supplies the learning summary stored alongside the libraries.
type StatsSource interface {
	LearningStats(ctx context.Context) (stats.LearningStats, error)
}

// BackupFileName is the default export file name for a calendar day.
func BackupFileName(day string) string {
	return fmt.Sprintf("wordiz-data-%s.json", day)
}

// Export collects every library plus the learning summary.
func Export(ctx context.Context, libs store.LibraryRepo, src StatsSource, now time.Time) (*Backup, error) {
	all, err := libs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("export libraries: %w", err)
	}
	ls, err := src.LearningStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("export stats: %w", err)
	}
	for i := range all {
		if all[i].Words == nil {
			all[i].Words = []words.Word{}
		}
	}
	return &Backup{
		Libraries:     all,
		ProgressStats: ls,
		ExportDate:    now.UTC(),
		Version:       BackupVersion,
	}, nil
}

// WriteBackup encodes b as indented JSON.
func WriteBackup(w io.Writer, b *Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// backupFile mirrors Backup with lenient field types so files written by
// other tools decode.
type backupFile struct {
	Libraries []struct {
		Name  string       `json:"name"`
		Words []words.Word `json:"words"`
	} `json:"libraries"`
	ExportDate string `json:"exportDate"`
	Version    string `json:"version"`
}

// ReadBackup validates and decodes an export file. Progress statistics are
// informational and are not decoded.
func ReadBackup(r io.Reader) (*Backup, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if _, err := validate("backup", backupSchema, raw); err != nil {
		return nil, &ParseError{Format: "backup", Err: err}
	}

	var f backupFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, &ParseError{Format: "backup", Err: err}
	}

	b := &Backup{Version: f.Version}
	if t, err := time.Parse(time.RFC3339, f.ExportDate); err == nil {
		b.ExportDate = t
	}
	for _, l := range f.Libraries {
		b.Libraries = append(b.Libraries, words.Library{Name: l.Name, Words: l.Words})
	}
	return b, nil
}

// Restore saves every library of b through the importer, deduplicating each
// word list. Mastery records and events are not part of a backup.
func (im *Importer) Restore(ctx context.Context, b *Backup) (int, error) {
	n := 0
	for _, lib := range b.Libraries {
		if err := im.Save(ctx, lib); err != nil {
			return n, fmt.Errorf("restore: %w", err)
		}
		n++
	}
	return n, nil
}
