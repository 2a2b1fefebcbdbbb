package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/bizdate/internal/export"
	"github.com/username/bizdate/internal/store"
	"github.com/username/bizdate/pkg/dateutil"
	"github.com/username/bizdate/pkg/flatten"
	"github.com/username/bizdate/pkg/offset"
	"go.uber.org/zap"
)

// Result is the outcome of one batch line
type Result struct {
	Line   int
	Start  string
	Amount int
	Unit   string
	Date   string
	Error  string
}

// Snapshot is the persisted form of a batch run
type Snapshot struct {
	CreatedAt time.Time
	Source    string
	Results   []Result
}

func batchCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "batch <input> <output.csv>",
		Short: "Offset every date,amount,unit line of input and export the results as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]
			if snapshotPath == "" {
				snapshotPath = cfg.Export.SnapshotFile
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer f.Close()

			results, err := runBatch(f, tracedCompute(logger), cfg.Offset.GetDefaultUnit(), cfg.Offset.DateLayout)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			logger.Info("Batch processed",
				zap.String("input", input),
				zap.Int("lines", len(results)),
				zap.Int("failed", failed))

			written, err := export.NewCSVExporter(logger).WriteFile(output, resultRows(results))
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d result(s) to %s\n", len(results), output)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, not overwritten\n", output)
			}

			if snapshotPath != "" {
				snapshot := Snapshot{CreatedAt: time.Now(), Source: input, Results: results}
				if err := store.NewStore(logger).Save(snapshotPath, snapshot); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Snapshot saved to %s\n", snapshotPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Also save results as a binary snapshot (default from config)")

	return cmd
}

// runBatch reads date,amount[,unit] records. Blank and '#' lines are skipped.
// Per-line offset failures are recorded in the Result; malformed input aborts.
func runBatch(r io.Reader, compute offset.Func, defaultUnit offset.Unit, layout string) ([]Result, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	results := []Result{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read batch input: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(record) < 2 || len(record) > 3 {
			return nil, fmt.Errorf("line %d: want date,amount[,unit], got %d field(s)", line, len(record))
		}

		start, err := dateutil.ParseDate(record[0], layout)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amount, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, record[1], err)
		}

		res := Result{Line: line, Start: dateutil.FormatDate(start), Amount: amount, Unit: defaultUnit.String()}

		unit := defaultUnit
		if len(record) == 3 {
			res.Unit = strings.TrimSpace(record[2])
			unit, err = offset.ParseUnit(res.Unit)
		}
		if err == nil {
			var date time.Time
			if date, err = compute(start, amount, unit); err == nil {
				res.Date = dateutil.FormatDate(date)
			}
		}
		if err != nil {
			res.Error = err.Error()
		}

		results = append(results, res)
	}
	return results, nil
}

func resultRows(results []Result) []export.Row {
	rows := make([]export.Row, 0, len(results)+1)
	rows = append(rows, export.Row{flatten.Leafs("start", "amount", "unit", "result")})
	for _, r := range results {
		outcome := r.Date
		if r.Error != "" {
			outcome = "error: " + r.Error
		}
		rows = append(rows, export.Row{
			flatten.Any(r.Start),
			flatten.Any(r.Amount),
			flatten.Leaf(r.Unit),
			flatten.Leaf(outcome),
		})
	}
	return rows
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [snapshot]",
		Short: "Print a saved batch snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Export.SnapshotFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no snapshot given and export.snapshot_file is not configured")
			}

			var snapshot Snapshot
			if err := store.NewStore(logger).Load(path, &snapshot); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Snapshot of %s taken %s\n", snapshot.Source, snapshot.CreatedAt.Format(time.RFC3339))
			fmt.Fprintln(out, "  Line | Start      | Amount | Unit | Result")
			for _, r := range snapshot.Results {
				outcome := r.Date
				if r.Error != "" {
					outcome = "error: " + r.Error
				}
				fmt.Fprintf(out, "  %4d | %s | %6d | %-4s | %s\n", r.Line, r.Start, r.Amount, r.Unit, outcome)
			}
			return nil
		},
	}
}
