package expense

import "context"

// Store persists expenses.
type Store interface {
	Migrate(ctx context.Context) error
	Create(ctx context.Context, e *Expense) error
	// CreateBatch inserts all expenses or none of them.
	CreateBatch(ctx context.Context, expenses []Expense) (int, error)
	List(ctx context.Context) ([]Expense, error)
	Get(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error
	Close() error
}

const schema = `CREATE TABLE IF NOT EXISTS expenses (
	id TEXT PRIMARY KEY,
	amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	description TEXT NOT NULL,
	date TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
)`
