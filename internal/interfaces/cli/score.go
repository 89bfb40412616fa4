package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dealbridge/dealbridge/internal/domain/buyer"
	"github.com/dealbridge/dealbridge/internal/domain/listing"
	"github.com/dealbridge/dealbridge/internal/domain/matching"
)

// newScoreCommand scores a listing/buyer pair from local JSON files, with no
// server or database involved.  Useful for tuning weight tables offline.
func newScoreCommand() *cobra.Command {
	var (
		listingPath string
		buyerPath   string
		enrich      bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a listing/buyer pair from JSON files",
		RunE: func(cmd *cobra.Command, args []string) error {
			var l listing.Listing
			if err := readJSONFile(listingPath, &l); err != nil {
				return fmt.Errorf("read listing: %w", err)
			}
			var p buyer.Profile
			if err := readJSONFile(buyerPath, &p); err != nil {
				return fmt.Errorf("read buyer: %w", err)
			}

			engine := matching.NewEngine()
			out := map[string]any{
				"score": engine.CalculateScore(&l, p, nil, nil),
			}
			if enrich {
				out["enrichment"] = engine.HeuristicEnrichment(&l, p)
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&listingPath, "listing", "", "path to a listing JSON file")
	cmd.Flags().StringVar(&buyerPath, "buyer", "", "path to a buyer profile JSON file")
	cmd.Flags().BoolVar(&enrich, "enrich", false, "include the heuristic deal-fit assessment")
	_ = cmd.MarkFlagRequired("listing")
	_ = cmd.MarkFlagRequired("buyer")
	return cmd
}

func readJSONFile(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
