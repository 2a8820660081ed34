// Package expense stores user expenses and fills in missing categories with
// the classifier.
package expense

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for Expense.Date.
const DateLayout = "2006-01-02"

var (
	ErrNotFound       = errors.New("expense not found")
	ErrInvalidExpense = errors.New("invalid expense")
)

// Expense is a single recorded spend.
type Expense struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the fields a client controls.
func (e *Expense) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil expense", ErrInvalidExpense)
	}
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidExpense)
	}
	if e.Amount < 0 || math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidExpense)
	}
	if e.Date != "" {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			return fmt.Errorf("%w: date must look like %s", ErrInvalidExpense, DateLayout)
		}
	}
	return nil
}
