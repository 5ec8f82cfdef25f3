package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/efsa/foodex2validator/internal/logging"
)

// LoadTermsTXT reads a tab-delimited term dump with columns CODE, NAME,
// TERM_TYPE, DETAIL_LEVEL, STATUS, DEPRECATED, IMPLICIT_FACETS, and loads
// every row into store. A leading header line is skipped.
func LoadTermsTXT(store *MemoryStore, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < 7 {
			return fmt.Errorf("catalog: term dump line %d: want 7 columns, got %d", line, len(cols))
		}
		deprecated, err := strconv.ParseBool(strings.TrimSpace(cols[5]))
		if err != nil {
			deprecated = false
		}
		store.PutTerm(Term{
			Code:           strings.TrimSpace(cols[0]),
			Name:           cols[1],
			Type:           TermType(strings.TrimSpace(cols[2])),
			DetailLevel:    strings.TrimSpace(cols[3]),
			Status:         Status(strings.TrimSpace(cols[4])),
			Deprecated:     deprecated,
			ImplicitFacets: strings.TrimSpace(cols[6]),
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	logging.Debug("loaded term dump", "lines", line-1)
	return nil
}

// LoadHierarchyTXT reads a tab-delimited parent-link dump with columns
// HIERARCHY, CODE, PARENT_CODE (PARENT_CODE empty for roots), and loads
// every row into store. A leading header line is skipped.
func LoadHierarchyTXT(store *MemoryStore, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) < 3 {
			return fmt.Errorf("catalog: hierarchy dump line %d: want 3 columns, got %d", line, len(cols))
		}
		hierarchy := strings.TrimSpace(cols[0])
		code := strings.TrimSpace(cols[1])
		parent := strings.TrimSpace(cols[2])
		if parent == "" {
			store.PutMember(hierarchy, code)
			continue
		}
		store.PutParent(hierarchy, code, parent)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	logging.Debug("loaded hierarchy dump", "lines", line-1)
	return nil
}
