package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"car-damage-bot/internal/domain/cost"
	"car-damage-bot/internal/domain/entity"
)

func newEstimateCmd(loadTables func() (cost.Tables, error)) *cobra.Command {
	var (
		carType  string
		severity string
		parts    []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate repair cost for a list of damaged parts",
		RunE: func(cmd *cobra.Command, args []string) error {
			inventory, err := parseParts(parts)
			if err != nil {
				return err
			}

			tables, err := loadTables()
			if err != nil {
				return err
			}

			b := cost.NewEstimator(tables).Breakdown(carType, severity, inventory)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}

			fmt.Fprintf(out, "category:            %s\n", b.Category)
			fmt.Fprintf(out, "base sum:            %.0f\n", b.BaseSum)
			fmt.Fprintf(out, "severity multiplier: %.2f\n", b.SeverityMultiplier)
			fmt.Fprintf(out, "car multiplier:      %.2f\n", b.CarMultiplier)
			fmt.Fprintf(out, "estimate:            %d\n", b.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&carType, "car", "sedan", "Car model name")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity label (no_damage, minor, moderate, severe)")
	cmd.Flags().StringArrayVar(&parts, "part", nil, "Damaged part as name=count (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the breakdown as JSON")
	_ = cmd.MarkFlagRequired("severity")

	return cmd
}

// parseParts разбирает значения вида "bumper=2"; без "=" количество равно 1.
func parseParts(values []string) (entity.DamagedParts, error) {
	parts := make(entity.DamagedParts, len(values))
	for _, v := range values {
		name, countStr, found := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --part %q: empty part name", v)
		}

		count := 1
		if found {
			n, err := strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid --part %q: count must be a positive integer", v)
			}
			count = n
		}
		parts[entity.Part(name)] += count
	}
	return parts, nil
}
