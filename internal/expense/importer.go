package expense

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Import reads expenses from CSV and stores them in one batch.
// The header row names the columns; description is required and amount,
// date and category are optional. Rows without a category are categorized.
// Nothing is stored when any row is invalid.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: empty csv", ErrInvalidExpense)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	// Spreadsheet "CSV UTF-8" exports start with a byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["description"]; !ok {
		return 0, fmt.Errorf("%w: csv header has no description column", ErrInvalidExpense)
	}
	field := func(record []string, name string) string {
		if i, ok := columns[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	var expenses []Expense
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
		}

		e := Expense{
			Description: field(record, "description"),
			Date:        field(record, "date"),
			Category:    field(record, "category"),
		}
		if raw := field(record, "amount"); raw != "" {
			e.Amount, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: line %d: bad amount %q", ErrInvalidExpense, line, raw)
			}
		}
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		expenses = append(expenses, s.prepare(e))
	}

	if len(expenses) == 0 {
		return 0, nil
	}
	n, err := s.store.CreateBatch(ctx, expenses)
	if err != nil {
		return 0, err
	}
	slog.Info("Imported expenses", "count", n)
	return n, nil
}
