package library

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/words"
)

// DefaultName is used when an import has no usable name.
const DefaultName = "custom_import"

// FormatFor picks the parser for a file by its extension. Anything that is
// not JSON, CSV or XLSX is read as "headword:meaning" lines.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatText
	}
}

// NameFor derives a library name from a file path.
func NameFor(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return DefaultName
	}
	return name
}

// Parse reads r in the given format and returns the deduplicated word list.
func Parse(r io.Reader, format Format) ([]words.Word, error) {
	var (
		list []words.Word
		err  error
	)
	switch format {
	case FormatJSON:
		raw, rerr := io.ReadAll(r)
		if rerr != nil {
			return nil, &ParseError{Format: string(format), Err: rerr}
		}
		list, err = ParseJSON(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")))
	case FormatCSV:
		list, err = ParseCSV(r)
	case FormatXLSX:
		list, err = ParseXLSX(r)
	case FormatText:
		list, err = ParseLines(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	list = Dedup(list)
	if len(list) == 0 {
		return nil, ErrNoWords
	}
	return list, nil
}

// LoadFile parses the file at path into a library named name, or a name
// derived from the path when name is blank.
func LoadFile(path, name string) (words.Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return words.Library{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	list, err := Parse(f, FormatFor(path))
	if err != nil {
		return words.Library{}, fmt.Errorf("import %s: %w", path, err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = NameFor(path)
	}
	return words.Library{Name: name, Words: list}, nil
}

// Importer loads files into the library store.
type Importer struct {
	repo store.LibraryRepo
	now  func() time.Time
}

// NewImporter creates an Importer writing to repo.
func NewImporter(repo store.LibraryRepo) *Importer {
	return &Importer{repo: repo, now: time.Now}
}

// ImportFile parses path and saves it as a library, replacing any library of
// the same name.
func (im *Importer) ImportFile(ctx context.Context, path, name string) (words.Library, error) {
	lib, err := LoadFile(path, name)
	if err != nil {
		return words.Library{}, err
	}
	return lib, im.Save(ctx, lib)
}

// Save deduplicates lib's words and stores it with the current time.
func (im *Importer) Save(ctx context.Context, lib words.Library) error {
	lib.Words = Dedup(lib.Words)
	lib.ImportedAt = im.now()
	if err := im.repo.Save(ctx, lib); err != nil {
		return fmt.Errorf("save library %q: %w", lib.Name, err)
	}
	return nil
}

// AddToLibrary appends a single word to the named library, creating it when
// missing. The original library order is kept.
func (im *Importer) AddToLibrary(ctx context.Context, name string, w words.Word) (words.Library, error) {
	existing, err := im.repo.Get(ctx, name)
	if err != nil {
		return words.Library{}, err
	}
	lib := words.Library{Name: name}
	if existing != nil {
		lib = *existing
	}
	lib.Words = AddWord(lib.Words, w)
	return lib, im.Save(ctx, lib)
}
