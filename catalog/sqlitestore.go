package catalog

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a Store backed by a read-only embedded SQLite database,
// satisfying the spec's "served from memory or from a read-only embedded
// store" requirement for deployments with a catalogue too large to hold
// comfortably as loaded Go maps. It expects a schema with tables
// `terms(code, name, term_type, detail_level, status, deprecated,
// implicit_facets)`, `hierarchy_parents(hierarchy, code, parent_code)`,
// `forbidden_processes(root_group_code, root_group_label, process_code,
// process_label, ordinal_code)`, `process_ordinals(process_code, ordinal)`,
// `rule_messages(id, message, severity)`, and `catalog_sets(name, code)`
// (for the PhysicalStateSet/DehydrationProcessSet/RehydrationProcessSet
// rows, name ∈ {"physical_state", "dehydration_process",
// "rehydration_process"}).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens a read-only connection to a SQLite catalogue
// snapshot at path. The returned Store never writes to the database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro&immutable=1", path))
	if err != nil {
		return nil, fmt.Errorf("catalog: opening sqlite store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: sqlite store unreachable: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LookupTerm(code string) (Term, bool) {
	row := s.db.QueryRow(`SELECT code, name, term_type, detail_level, status, deprecated, implicit_facets
		FROM terms WHERE code = ?`, code)
	var t Term
	var deprecated int
	if err := row.Scan(&t.Code, &t.Name, &t.Type, &t.DetailLevel, &t.Status, &deprecated, &t.ImplicitFacets); err != nil {
		return Term{}, false
	}
	t.Deprecated = deprecated != 0
	return t, true
}

func (s *SQLiteStore) ImplicitFacets(term Term) []FacetRef {
	return ParseImplicitFacets(term.ImplicitFacets)
}

func (s *SQLiteStore) Parent(code, hierarchy string) (string, bool) {
	row := s.db.QueryRow(`SELECT parent_code FROM hierarchy_parents WHERE hierarchy = ? AND code = ?`, hierarchy, code)
	var parent string
	if err := row.Scan(&parent); err != nil || parent == "" {
		return "", false
	}
	return parent, true
}

func (s *SQLiteStore) IsMember(code, hierarchy string) bool {
	row := s.db.QueryRow(`SELECT 1 FROM hierarchy_parents WHERE hierarchy = ? AND (code = ? OR parent_code = ?) LIMIT 1`,
		hierarchy, code, code)
	var one int
	return row.Scan(&one) == nil
}

func (s *SQLiteStore) ForbiddenProcessesFor(code string, ancestorsInclusive []string) map[string]bool {
	out := make(map[string]bool)
	codes := append([]string{code}, ancestorsInclusive...)
	for _, c := range codes {
		rows, err := s.db.Query(`SELECT process_code FROM forbidden_processes WHERE root_group_code = ?`, c)
		if err != nil {
			continue
		}
		for rows.Next() {
			var process string
			if rows.Scan(&process) == nil {
				out[process] = true
			}
		}
		rows.Close()
	}
	return out
}

func (s *SQLiteStore) ProcessOrdinal(processCode string) (decimal.Decimal, bool) {
	row := s.db.QueryRow(`SELECT ordinal FROM process_ordinals WHERE process_code = ?`, processCode)
	var raw string
	if err := row.Scan(&raw); err != nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func (s *SQLiteStore) RuleMessage(id string) (RuleMessage, bool) {
	row := s.db.QueryRow(`SELECT id, message, severity FROM rule_messages WHERE id = ?`, id)
	var rm RuleMessage
	if err := row.Scan(&rm.ID, &rm.Message, &rm.Severity); err != nil {
		return RuleMessage{}, false
	}
	return rm, true
}

func (s *SQLiteStore) PhysicalStateSet() map[string]bool {
	return s.catalogSet("physical_state")
}

func (s *SQLiteStore) DehydrationProcessSet() map[string]bool {
	return s.catalogSet("dehydration_process")
}

func (s *SQLiteStore) RehydrationProcessSet() map[string]bool {
	return s.catalogSet("rehydration_process")
}

func (s *SQLiteStore) catalogSet(name string) map[string]bool {
	out := make(map[string]bool)
	rows, err := s.db.Query(`SELECT code FROM catalog_sets WHERE name = ?`, name)
	if err != nil {
		return out
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		if rows.Scan(&code) == nil {
			out[code] = true
		}
	}
	return out
}
