package driven

import "github.com/custodia-labs/sentinel/internal/core/domain"

// ReportStore persists assembled reports, one file per report plus a sibling
// file for the summarised variant.
type ReportStore interface {
	// Save writes the report and, if present, its summarised variant.
	Save(report *domain.Report) (domain.SavedReport, error)

	// List returns exported report files, most recently modified first.
	List() ([]domain.ReportFile, error)

	// Read returns the content of an exported report by file name.
	// Returns domain.ErrNotFound for unknown names.
	Read(name string) (string, error)

	// Dir returns the export directory.
	Dir() string
}
