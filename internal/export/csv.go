// Package export writes recorded leads in operator-friendly formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/kakascoaching/site/internal/storage"
)

var fixedColumns = []string{"id", "form", "template", "status", "created_at", "error"}

// FileName returns the default export name for a moment in time.
func FileName(now time.Time) string {
	return "leads-" + now.UTC().Format("20060102-150405") + ".csv"
}

// WriteCSV writes leads as CSV. Field columns follow the fixed columns, in
// name order across every lead.
func WriteCSV(w io.Writer, leads []storage.Lead) error {
	fields := fieldColumns(leads)
	cw := csv.NewWriter(w)
	header := append(append([]string{}, fixedColumns...), fields...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, lead := range leads {
		row := []string{
			lead.ID,
			lead.Form,
			lead.Template,
			string(lead.Status),
			lead.CreatedAt.UTC().Format(time.RFC3339),
			lead.Error,
		}
		for _, name := range fields {
			row = append(row, lead.Fields[name])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", lead.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func fieldColumns(leads []storage.Lead) []string {
	seen := make(map[string]struct{})
	for _, lead := range leads {
		for name := range lead.Fields {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
