// Command foodex2validate validates EFSA FoodEx2 expressions from the
// command line: one expression per argument, or piped one-per-line from
// stdin with "-".
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	foodex2 "github.com/efsa/foodex2validator"
	"github.com/efsa/foodex2validator/catalog"
	"github.com/efsa/foodex2validator/engine"
	"github.com/efsa/foodex2validator/internal/logging"
	"github.com/efsa/foodex2validator/pool"
	"github.com/efsa/foodex2validator/stream"
)

var version = "0.1.0"

type rootFlags struct {
	catalogPath string
	sqlitePath  string
	output      string
	blockOnHigh bool
	debug       bool
	workers     int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:     "foodex2validate [expression...]",
		Short:   "Validate EFSA FoodEx2 expressions against a catalogue",
		Version: version,
		Long: `foodex2validate validates FoodEx2 expressions (base term plus facet
descriptors) against a catalogue of terms, hierarchies, and business rules.

Examples:
  foodex2validate --catalog ./data A0B9Z#F28.A07JS$F01.A0F6E
  cat expressions.txt | foodex2validate --catalog ./data -
  foodex2validate --catalog ./data --output json A000J#F01.A0F6E`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.catalogPath, "catalog", "", "directory containing terms.txt, hierarchy.txt, forbidden.csv (required unless --sqlite is set)")
	cmd.Flags().StringVar(&flags.sqlitePath, "sqlite", "", "path to a read-only SQLite catalogue snapshot")
	cmd.Flags().StringVar(&flags.output, "output", "text", "output format: text|json")
	cmd.Flags().BoolVar(&flags.blockOnHigh, "block-on-high", true, "treat HIGH-severity warnings as invalidating (default true)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "batch worker count (0 = runtime.NumCPU())")

	return cmd
}

func run(ctx context.Context, flags *rootFlags, args []string) error {
	if flags.debug {
		logging.SetDefault(logging.NewDebug())
	}

	store, closeStore, err := openStore(flags)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []foodex2.Option{foodex2.WithBlockOnHigh(flags.blockOnHigh)}
	if flags.workers > 0 {
		opts = append(opts, foodex2.WithWorkerCount(flags.workers))
	}

	v, err := engine.New(ctx, store, opts...)
	if err != nil {
		return fmt.Errorf("foodex2validate: %w", err)
	}

	if len(args) == 1 && args[0] == "-" {
		return runStream(ctx, v, flags.output)
	}
	return runArgs(ctx, v, flags.output, args)
}

func openStore(flags *rootFlags) (catalog.Store, func(), error) {
	if flags.sqlitePath != "" {
		s, err := catalog.OpenSQLiteStore(flags.sqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("foodex2validate: %w", err)
		}
		return s, func() { s.Close() }, nil
	}
	if flags.catalogPath == "" {
		return nil, nil, fmt.Errorf("foodex2validate: one of -catalog or -sqlite is required")
	}

	store := catalog.NewMemoryStore()
	if err := loadDirectory(store, flags.catalogPath); err != nil {
		return nil, nil, fmt.Errorf("foodex2validate: %w", err)
	}
	return store, func() {}, nil
}

func loadDirectory(store *catalog.MemoryStore, dir string) error {
	files := map[string]func(*catalog.MemoryStore, string) error{
		"terms.txt":     loadTermsFile,
		"hierarchy.txt": loadHierarchyFile,
		"forbidden.csv": loadForbiddenFile,
	}
	for name, load := range files {
		path := dir + "/" + name
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := load(store, path); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

func loadTermsFile(store *catalog.MemoryStore, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return catalog.LoadTermsTXT(store, f)
}

func loadHierarchyFile(store *catalog.MemoryStore, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return catalog.LoadHierarchyTXT(store, f)
}

func loadForbiddenFile(store *catalog.MemoryStore, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return catalog.LoadForbiddenProcessCSV(store, f)
}

func runArgs(ctx context.Context, v *engine.Validator, output string, expressions []string) error {
	results := v.ValidateBatch(ctx, expressions)
	invalid := 0
	for i, result := range results {
		if result == nil {
			continue
		}
		if !result.Valid {
			invalid++
		}
		printResult(output, expressions[i], result)
		result.Release()
	}
	if invalid > 0 {
		os.Exit(1)
	}
	return nil
}

func runStream(ctx context.Context, v *engine.Validator, output string) error {
	sv := stream.NewValidator(v.Validate)
	hasInvalid := false
	for r := range sv.ValidateStream(ctx, os.Stdin) {
		if r.Error != nil {
			fmt.Fprintf(os.Stderr, "foodex2validate: line %d: %v\n", r.Index+1, r.Error)
			continue
		}
		if !r.Result.Valid {
			hasInvalid = true
		}
		printResult(output, r.Expression, r.Result)
		r.Result.Release()
	}
	if hasInvalid {
		os.Exit(1)
	}
	return nil
}

func printResult(output, expression string, result *foodex2.Result) {
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		_ = enc.Encode(result)
		return
	}

	status := "VALID"
	if !result.Valid {
		status = "INVALID"
	}

	lines := pool.AcquireStringSlice()
	defer pool.ReleaseStringSlice(lines)

	*lines = append(*lines, fmt.Sprintf("%s\t%s", status, expression))
	for _, w := range result.AllWarnings() {
		*lines = append(*lines, "  "+w.String())
	}
	if result.CleanedCode != "" {
		*lines = append(*lines, "  cleaned: "+result.CleanedCode)
	}
	fmt.Println(strings.Join(*lines, "\n"))
}
