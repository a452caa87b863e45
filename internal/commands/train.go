package commands

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/classify"
)

func newTrainCommand() *cobra.Command {
	var dataPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the category classifier from labeled examples",
		Long:  "Trains a text classifier from a CSV of description,category pairs and writes the model artifact.",
		RunE: func(cmd *cobra.Command, args []string) error {
			examples, err := readExamples(dataPath)
			if err != nil {
				return err
			}

			model, err := classify.Train(examples)
			if err != nil {
				return err
			}
			if err := model.Save(outPath); err != nil {
				return err
			}
			fmt.Printf("Trained on %d examples, wrote model to %s\n", len(examples), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "labeled CSV with description,category columns (required)")
	_ = cmd.MarkFlagRequired("data")
	cmd.Flags().StringVar(&outPath, "out", "models/classifier.gob", "model artifact output path")

	return cmd
}

func readExamples(path string) ([]classify.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening training data: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 2

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading training data: %w", err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("training data %s has no rows", path)
	}

	// Skip header row.
	examples := make([]classify.Example, 0, len(records)-1)
	for _, rec := range records[1:] {
		examples = append(examples, classify.Example{Description: rec[0], Category: rec[1]})
	}
	return examples, nil
}
