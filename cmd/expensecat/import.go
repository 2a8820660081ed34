package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/TFMV/ExpenseClassifier/internal/classifier"
	"github.com/TFMV/ExpenseClassifier/internal/expense"
	"github.com/spf13/cobra"
)

func importCmd(loadConfig configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import expenses from a CSV file into the expense store",
		Long: `Import reads a CSV file whose header names the columns (description is
required; amount, date and category are optional) and stores every row.
Rows without a category are categorized with the trained model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			p, err := classifier.Load(cfg.Model.Path)
			if err != nil {
				return fmt.Errorf("failed to load model: %w", err)
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("no expense store configured (set store.driver or --store)")
			}
			defer store.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			n, err := expense.NewService(store, p).Import(ctx, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses\n", n)
			return nil
		},
	}

	cmd.Flags().String("model", "", "model artifact path")
	cmd.Flags().String("store", "", "expense store (sqlite, postgres)")
	return cmd
}
