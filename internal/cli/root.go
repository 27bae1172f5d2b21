package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"car-damage-bot/internal/domain/cost"
)

// NewRootCmd собирает дерево команд damagectl.
func NewRootCmd() *cobra.Command {
	var tablesPath string

	root := &cobra.Command{
		Use:   "damagectl",
		Short: "Offline car damage assessment",
		Long: `Offline tools over the car damage assessment core.

Works on detector output that was already saved to disk, so no network
access is needed:
- estimate: price a list of damaged parts
- assess:   aggregate detections, draw them on the photo and price the damage
- classify: show how car names and detector labels are normalized`,
		Example: `  damagectl estimate --car "Toyota Fortuner SUV" --severity moderate --part bumper=1 --part door=1
  damagectl assess --image car.jpg --detections predictions.json --out annotated.jpg --car "Honda City Sedan"
  damagectl classify "Maruti Wagon R" "Front-Bumper-Dent"`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&tablesPath, "tables", "", "YAML file overriding the cost tables")

	loadTables := func() (cost.Tables, error) {
		if tablesPath == "" {
			return cost.DefaultTables(), nil
		}
		return cost.LoadTables(tablesPath)
	}

	root.AddCommand(
		newEstimateCmd(loadTables),
		newAssessCmd(loadTables),
		newClassifyCmd(),
	)

	return root
}

// Execute runs the root cobra command and exits on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
