package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// table writes tab-separated rows aligned into columns.
type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, header ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
	t.row(header...)
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.w, strings.Join(cols, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseMonth reads a YYYY-MM value, defaulting to the current month.
func (a *App) parseMonth(s string) (int, int, error) {
	if s == "" {
		now := a.Now()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month must look like 2024-05, got %q", ErrUsage, s)
	}
	return t.Year(), int(t.Month()), nil
}

// parseAmount checks that s is a positive decimal and keeps its text as is.
func parseAmount(s string) (json.Number, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return "", fmt.Errorf("%w: amount must be a positive number, got %q", ErrUsage, s)
	}
	return json.Number(s), nil
}

func parseID(args []string, what string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected exactly one %s id", ErrUsage, what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id %q", ErrUsage, what, args[0])
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
