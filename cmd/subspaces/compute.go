// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/troy-haydens-bot/Strang-4-subspace/subspace"
)

// Output formats of the compute command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

var (
	errNoMatrix  = errors.New("no matrix provided: use --matrix or --file")
	errNullEntry = errors.New("matrix entries must be numbers, got null")
)

type computeFlags struct {
	matrix  string
	file    string
	format  string
	verify  bool
	maxRows int
	maxCols int
}

func newComputeCmd(a *app) *cobra.Command {
	f := &computeFlags{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the four subspaces of one matrix",
		Long: `Reads a matrix as JSON rows (--matrix '[[1,2],[2,4]]') or from a .json/.yaml
file holding either the rows or {"matrix": rows}, and prints the result.`,
		Example: `  subspaces compute --matrix '[[1,2],[2,4]]'
  subspaces compute --file a.yaml --format text --verify`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd.OutOrStdout(), a, f)
		},
	}

	cmd.Flags().StringVarP(&f.matrix, "matrix", "m", "", "Matrix as JSON rows")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Matrix file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&f.format, "format", formatJSON, "Output format (json|yaml|text)")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "Numerically verify the result before printing")
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "Reject matrices with more rows (0 = unlimited)")
	cmd.Flags().IntVar(&f.maxCols, "max-cols", 0, "Reject matrices with more columns (0 = unlimited)")

	return cmd
}

func runCompute(out io.Writer, a *app, f *computeFlags) error {
	if f.maxRows < 0 || f.maxCols < 0 {
		return fmt.Errorf("--max-rows/--max-cols must be non-negative")
	}
	switch f.format {
	case formatJSON, formatYAML, formatText:
	default:
		return fmt.Errorf("unknown --format %q (want json|yaml|text)", f.format)
	}

	rows, err := readMatrix(f)
	if err != nil {
		return err
	}

	res, err := subspace.Compute(rows,
		subspace.WithMaxDims(f.maxRows, f.maxCols),
		subspace.WithTolerance(a.cfg.Numeric.Tolerance),
		subspace.WithLogger(log.Logger),
	)
	if err != nil {
		return err
	}
	if f.verify {
		if err = subspace.Verify(res, 0); err != nil {
			return err
		}
		log.Info().Int("rank", res.Dimensions.Rank).Msg("result verified")
	}

	return render(out, res, f.format)
}

// readMatrix resolves --matrix or --file into rows.
func readMatrix(f *computeFlags) ([][]float64, error) {
	switch {
	case f.matrix != "" && f.file != "":
		return nil, fmt.Errorf("--matrix and --file are mutually exclusive")
	case f.matrix != "":
		return decodeMatrix([]byte(f.matrix), json.Unmarshal)
	case f.file != "":
		b, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read matrix file: %w", err)
		}
		switch strings.ToLower(filepath.Ext(f.file)) {
		case ".yaml", ".yml":
			return decodeMatrix(b, yaml.Unmarshal)
		default:
			return decodeMatrix(b, json.Unmarshal)
		}
	default:
		return nil, errNoMatrix
	}
}

// decodeMatrix accepts bare rows or an object with a "matrix" key. Null entries
// are rejected rather than read as 0.
func decodeMatrix(b []byte, unmarshal func([]byte, any) error) ([][]float64, error) {
	var rows [][]*float64
	if err := unmarshal(b, &rows); err == nil {
		return derefRows(rows)
	}

	var wrapped struct {
		Matrix [][]*float64 `json:"matrix" yaml:"matrix"`
	}
	if err := unmarshal(b, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode matrix: %w", err)
	}
	if wrapped.Matrix == nil {
		return nil, errNoMatrix
	}

	return derefRows(wrapped.Matrix)
}

func derefRows(raw [][]*float64) ([][]float64, error) {
	out := make([][]float64, len(raw))
	for i, row := range raw {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				return nil, fmt.Errorf("row %d, column %d: %w", i, j, errNullEntry)
			}
			out[i][j] = *v
		}
	}

	return out, nil
}

func render(out io.Writer, res *subspace.Result, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		return renderText(out, res)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
}

func renderText(out io.Writer, res *subspace.Result) error {
	d := res.Dimensions
	var b strings.Builder
	fmt.Fprintf(&b, "A is %dx%d, rank %d\n", d.M, d.N, d.Rank)
	for _, s := range res.Spaces() {
		fmt.Fprintf(&b, "\n%s  dim %d in %s\n", s.Name, s.Dimension, s.Ambient)
		if s.Trivial() {
			b.WriteString("  {0}\n")
			continue
		}
		for j, v := range s.Vectors() {
			fmt.Fprintf(&b, "  v%d = %s\n", j+1, formatVec(v))
		}
	}
	fmt.Fprintf(&b, "\n%s\n%s\n", res.Orthogonality.ColumnNull, res.Orthogonality.RowLeftNull)
	_, err := io.WriteString(out, b.String())

	return err
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.6g", x)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
