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
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Categorizer maps a free-text description to a category.
type Categorizer interface {
	Predict(text string) string
}

// Service applies expense rules on top of a Store.
type Service struct {
	store       Store
	categorizer Categorizer
	now         func() time.Time
}

// NewService builds a Service. categorizer may be nil, in which case
// expenses without a category are stored uncategorized.
func NewService(store Store, categorizer Categorizer) *Service {
	return &Service{
		store:       store,
		categorizer: categorizer,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) categorize(e *Expense) {
	e.Category = strings.TrimSpace(e.Category)
	if e.Category != "" || s.categorizer == nil {
		return
	}
	e.Category = s.categorizer.Predict(e.Description)
	slog.Debug("Categorized expense", "description", e.Description, "category", e.Category)
}

// prepare assigns a fresh ID and creation time and fills in the category.
func (s *Service) prepare(e Expense) Expense {
	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	s.categorize(&e)
	return e
}

// Create validates e, fills in ID and category, and stores it.
func (s *Service) Create(ctx context.Context, e Expense) (*Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e = s.prepare(e)

	if err := s.store.Create(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context) ([]Expense, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Expense, error) {
	return s.store.Get(ctx, id)
}

// Update replaces the expense stored under id. An unknown id creates a new
// expense with a fresh ID instead.
func (s *Service) Update(ctx context.Context, id string, e Expense) (*Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		slog.Info("Expense not found, creating a new one", "id", id)
		return s.Create(ctx, e)
	}
	if err != nil {
		return nil, err
	}

	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	s.categorize(&e)
	if err := s.store.Update(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the expense. Deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
