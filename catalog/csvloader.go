package catalog

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/efsa/foodex2validator/internal/logging"
)

// LoadForbiddenProcessCSV reads the forbidden-process reference table
// (';'-delimited) with columns ROOT_GROUP_CODE, ROOT_GROUP_LABEL,
// FORBIDDEN_PROCS, FORBIDDEN_PROCS_LABELS, ORDINAL_CODE, and loads every
// row into store. The first row is assumed to be a header and is skipped.
func LoadForbiddenProcessCSV(store *MemoryStore, r io.Reader) error {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("catalog: reading forbidden-process table: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	for i, rec := range records[1:] {
		if len(rec) < 5 {
			return fmt.Errorf("catalog: forbidden-process table row %d: want 5 columns, got %d", i+2, len(rec))
		}
		ordinal, err := decimal.NewFromString(rec[4])
		if err != nil {
			return fmt.Errorf("catalog: forbidden-process table row %d: invalid ordinal %q: %w", i+2, rec[4], err)
		}
		store.PutForbiddenProcess(ForbiddenProcess{
			RootGroupCode:  rec[0],
			RootGroupLabel: rec[1],
			ProcessCode:    rec[2],
			ProcessLabel:   rec[3],
			Ordinal:        ordinal,
		})
	}
	logging.Debug("loaded forbidden-process table", "rows", len(records)-1)
	return nil
}
