package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/TFMV/ExpenseClassifier/internal/classifier"
	"github.com/TFMV/ExpenseClassifier/pkg/bow"
	"github.com/spf13/cobra"
)

func trainCmd(loadConfig configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the classifier and write the model artifact",
		Long: `Train fits the bag-of-words Naive Bayes classifier on a labelled dataset
and writes the model artifact. Without --dataset the built-in seed examples are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			tokenizer, err := bow.TokenizerByName(cfg.Model.Tokenizer)
			if err != nil {
				return err
			}

			examples := classifier.SeedDataset()
			if cfg.Model.Dataset != "" {
				examples, err = classifier.LoadDataset(cfg.Model.Dataset)
				if err != nil {
					return fmt.Errorf("failed to load dataset: %w", err)
				}
			}

			p, err := classifier.Train(examples, classifier.TrainOptions{
				Tokenizer: tokenizer,
				Alpha:     cfg.Model.Alpha,
			})
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			if err := classifier.Persist(p, cfg.Model.Path); err != nil {
				return fmt.Errorf("failed to save model: %w", err)
			}

			info := p.Info()
			slog.Info("Model trained",
				"path", cfg.Model.Path,
				"examples", info.Examples,
				"vocabulary", info.VocabSize,
				"categories", len(info.Categories),
				"tokenizer", info.Tokenizer,
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Model trained and saved to %s (%s)\n",
				cfg.Model.Path, strings.Join(info.Categories, ", "))
			return nil
		},
	}

	cmd.Flags().String("dataset", "", "training dataset (.yaml, .yml or .csv)")
	cmd.Flags().String("model", "", "model artifact path")
	cmd.Flags().String("tokenizer", "", "tokenizer (alnum, prose)")
	cmd.Flags().Float64("alpha", 0, "additive smoothing constant")
	return cmd
}
