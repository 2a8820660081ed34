// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps expenses in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an open pool. Close releases the pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create expenses table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, e *Expense) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO expenses (id, amount, description, date, category, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Amount, e.Description, e.Date, e.Category, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
	}
	return nil
}

// expenseSource feeds expenses to COPY FROM.
type expenseSource struct {
	expenses []Expense
	idx      int
}

func (s *expenseSource) Next() bool {
	s.idx++
	return s.idx <= len(s.expenses)
}

func (s *expenseSource) Values() ([]any, error) {
	e := s.expenses[s.idx-1]
	return []any{e.ID, e.Amount, e.Description, e.Date, e.Category, e.CreatedAt.UTC()}, nil
}

func (s *expenseSource) Err() error {
	return nil
}

func (s *PostgresStore) CreateBatch(ctx context.Context, expenses []Expense) (int, error) {
	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"expenses"},
		[]string{"id", "amount", "description", "date", "category", "created_at"},
		&expenseSource{expenses: expenses},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy expenses: %w", err)
	}
	return int(n), nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, amount, description, date, category, created_at FROM expenses ORDER BY date, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Description, &e.Date, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Expense, error) {
	var e Expense
	err := s.pool.QueryRow(ctx,
		`SELECT id, amount, description, date, category, created_at FROM expenses WHERE id = $1`, id).
		Scan(&e.ID, &e.Amount, &e.Description, &e.Date, &e.Category, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense %s: %w", id, err)
	}
	return &e, nil
}

func (s *PostgresStore) Update(ctx context.Context, e *Expense) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE expenses SET amount = $1, description = $2, date = $3, category = $4 WHERE id = $5`,
		e.Amount, e.Description, e.Date, e.Category, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var _ Store = (*PostgresStore)(nil)
