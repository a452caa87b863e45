package statement

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
)

// SkippedFile records a statement file that could not be normalized.
type SkippedFile struct {
	Path   string
	Reason string
}

// Report is the outcome of normalizing a set of statement files.
type Report struct {
	Rows    []Row // combined, sorted by date
	Parsed  []string
	Skipped []SkippedFile
}

// ProcessFiles normalizes each file in turn. A file whose schema cannot
// be inferred is skipped and reported; only I/O and malformed-CSV
// failures abort the batch. The combined rows are sorted by date.
func ProcessFiles(paths []string, log zerolog.Logger) (Report, error) {
	var report Report
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return Report{}, fmt.Errorf("opening statement: %w", err)
		}

		rows, err := Parse(f, path)
		f.Close()

		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			log.Warn().Str("file", path).Str("missing", schemaErr.Missing).Msg("skipping statement file")
			report.Skipped = append(report.Skipped, SkippedFile{Path: path, Reason: schemaErr.Error()})
			continue
		}
		if err != nil {
			return Report{}, err
		}

		report.Parsed = append(report.Parsed, path)
		report.Rows = append(report.Rows, rows...)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Date.Before(report.Rows[j].Date)
	})
	return report, nil
}
