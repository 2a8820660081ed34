package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/TFMV/ExpenseClassifier/internal/classifier"
	"github.com/spf13/cobra"
)

func predictCmd(loadConfig configLoader) *cobra.Command {
	var showScores bool

	cmd := &cobra.Command{
		Use:   "predict TEXT...",
		Short: "Predict the category of an expense description",
		Example: `  expensecat predict pizza from dominos
  expensecat predict --scores "uber ride to airport"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			p, err := classifier.Load(cfg.Model.Path)
			if err != nil {
				if errors.Is(err, classifier.ErrIO) {
					return fmt.Errorf("%w (run `expensecat train` first)", err)
				}
				return err
			}

			text := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			if !showScores {
				fmt.Fprintln(out, p.Predict(text))
				return nil
			}

			fmt.Fprintf(out, "Predicted category: %s\n\n", p.Predict(text))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tLOG SCORE\tPROBABILITY")
			for _, s := range p.Scores(text) {
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", s.Category, s.LogScore, s.Probability)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("model", "", "model artifact path")
	cmd.Flags().BoolVar(&showScores, "scores", false, "print per-category scores")
	return cmd
}
