// Package reports writes assembled reports to Markdown files and lists them
// back for the web dashboard, the TUI and MCP clients.
package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/sentinel/internal/core/domain"
	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

const (
	fileExt       = ".md"
	summarySuffix = "-with-summary"
	multiPrefix   = "updates"
	fileDate      = "20060102"
)

// Store keeps report files in a single directory.
type Store struct {
	dir string
}

// NewStore creates the export directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: export directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the export directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the plain report and, when present, the summarised sibling.
// Saving the same report twice overwrites both files.
func (s *Store) Save(report *domain.Report) (domain.SavedReport, error) {
	if report == nil {
		return domain.SavedReport{}, domain.ErrInvalidInput
	}

	base := BaseName(report)
	saved := domain.SavedReport{Path: filepath.Join(s.dir, base+fileExt)}
	if err := writeFileAtomic(saved.Path, report.Markdown); err != nil {
		return domain.SavedReport{}, err
	}

	if report.HasSummary() {
		saved.SummaryPath = filepath.Join(s.dir, base+summarySuffix+fileExt)
		if err := writeFileAtomic(saved.SummaryPath, report.Summarized); err != nil {
			return saved, err
		}
	}
	return saved, nil
}

// List returns report files, most recently modified first.
func (s *Store) List() ([]domain.ReportFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading export directory: %w", err)
	}

	files := make([]domain.ReportFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.ReportFile{
			Name:      name,
			Path:      filepath.Join(s.dir, name),
			ModTime:   info.ModTime(),
			Size:      info.Size(),
			IsSummary: strings.HasSuffix(name, summarySuffix+fileExt),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name > files[j].Name
	})
	return files, nil
}

// Read returns the content of the named report file.
func (s *Store) Read(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%w: report name %q", domain.ErrInvalidInput, name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("report %q: %w", name, domain.ErrNotFound)
		}
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}

// BaseName returns the file name of a report without extension:
// owner_name_YYYYMMDD, or owner_name_YYYYMMDD-YYYYMMDD when the window
// spans several days. Multi-repository reports use the "updates" prefix.
// The start day is the lower bound, or the generation day when there is none.
func BaseName(report *domain.Report) string {
	prefix := multiPrefix
	if report.Repo != "" {
		prefix = report.Repo.Slug()
	}

	generated := report.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	generated = generated.UTC()

	start := generated
	if report.Window.HasSince() {
		start = report.Window.Since
	}

	// Until is exclusive at day granularity: a window ending at midnight
	// covers the previous day.
	end := start
	switch {
	case report.Window.HasUntil():
		end = report.Window.Until.Add(-time.Second)
	case report.Window.HasSince():
		end = generated
	}
	if end.Before(start) {
		end = start
	}

	dates := start.Format(fileDate)
	if endDay := end.Format(fileDate); endDay != dates {
		dates += "-" + endDay
	}
	return prefix + "_" + dates
}

func validName(name string) bool {
	return name != "" &&
		strings.HasSuffix(name, fileExt) &&
		!strings.HasPrefix(name, ".") &&
		filepath.Base(name) == name &&
		!strings.ContainsAny(name, `/\`)
}

// writeFileAtomic writes to a temp file in the same directory and renames
// it into place so readers never see a partial report.
func writeFileAtomic(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*")
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after rename

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing report file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	return nil
}
