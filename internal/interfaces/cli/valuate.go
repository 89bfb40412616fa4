package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/dealbridge/dealbridge/internal/domain/valuation"
)

// newValuateCommand runs the valuation engine over wizard data from a local
// JSON file.
func newValuateCommand() *cobra.Command {
	var (
		inputPath string
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "valuate",
		Short: "Value a business from a wizard-data JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data valuation.StepData
			if err := readJSONFile(inputPath, &data); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			opts := []valuation.Option{}
			if seed != 0 {
				opts = append(opts, valuation.WithRand(rand.New(rand.NewSource(seed))))
			}
			return printJSON(cmd, valuation.NewEngine(opts...).Calculate(&data))
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a wizard-data JSON file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for comparable generation (0 = random)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
