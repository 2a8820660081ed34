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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/TFMV/ExpenseClassifier/internal/classifier"
	"github.com/TFMV/ExpenseClassifier/internal/expense"
	"github.com/TFMV/ExpenseClassifier/pkg/api"
	"github.com/TFMV/ExpenseClassifier/pkg/config"
	"github.com/TFMV/ExpenseClassifier/pkg/db"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd(loadConfig configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().String("model", "", "model artifact path")
	cmd.Flags().String("store", "", "expense store (none, sqlite, postgres)")
	cmd.Flags().Duration("cache-ttl", 0, "prediction cache TTL (0 disables)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	p, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	info := p.Info()
	slog.Info("Model loaded",
		"path", cfg.Model.Path,
		"categories", info.Categories,
		"vocabulary", info.VocabSize,
		"trained_at", info.TrainedAt,
	)

	var predictor classifier.Predictor = p
	if cfg.Server.CacheTTL > 0 {
		predictor = classifier.NewCachedPredictor(p, cfg.Server.CacheTTL)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	var expenses *expense.Service
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close expense store", "error", err)
			}
		}()
		expenses = expense.NewService(store, predictor)
	}

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(predictor, expenses, api.Options{
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MaxImportBytes: cfg.Server.MaxImportBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openStore returns nil when no expense store is configured.
func openStore(ctx context.Context, cfg *config.Config) (expense.Store, error) {
	var store expense.Store
	switch cfg.Store.Driver {
	case config.StoreNone:
		return nil, nil
	case config.StoreSQLite:
		s, err := expense.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		store = s
	case config.StorePostgres:
		pool, err := db.NewConnection(ctx, cfg.Store.Postgres)
		if err != nil {
			return nil, err
		}
		store = expense.NewPostgresStore(pool)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate expense store: %w", err)
	}
	slog.Info("Expense store ready", "driver", cfg.Store.Driver)
	return store, nil
}
