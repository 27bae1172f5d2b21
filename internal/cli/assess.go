package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "car-damage-bot/internal/application"
	"car-damage-bot/internal/domain/cost"
	"car-damage-bot/internal/infrastructure/roboflow"
	"car-damage-bot/internal/infrastructure/vision"
)

func newAssessCmd(loadTables func() (cost.Tables, error)) *cobra.Command {
	var (
		imagePath      string
		detectionsPath string
		outputPath     string
		carType        string
		severity       string
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Aggregate saved detections, draw them and estimate repair cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables()
			if err != nil {
				return err
			}

			f, err := os.Open(detectionsPath)
			if err != nil {
				return fmt.Errorf("open detections: %w", err)
			}
			batch, err := roboflow.Decode(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", detectionsPath, err)
			}

			width, height, err := app.ImageSize(imagePath)
			if err != nil {
				return err
			}

			svc := app.NewAssessmentService(nil, vision.NewRenderer(), cost.NewEstimator(tables), "", "sedan")
			assessment, err := svc.AssessDetections(cmd.Context(), app.AssessmentRequest{
				ImagePath:  imagePath,
				OutputPath: outputPath,
				CarType:    carType,
				Severity:   severity,
			}, width, height, batch.Detections)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(assessment)
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Source photo")
	cmd.Flags().StringVar(&detectionsPath, "detections", "", "Detector JSON response")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "output.jpg", "Annotated image path (.png or JPEG)")
	cmd.Flags().StringVar(&carType, "car", "sedan", "Car model name")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity label from an external classifier (default: derived from detections)")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("detections")

	return cmd
}
