package main

import (
	"fmt"
	"stroke-risk-service/internal/app"
	"stroke-risk-service/internal/config"
	"stroke-risk-service/internal/domain"
	"stroke-risk-service/internal/services"

	"github.com/spf13/cobra"
)

var (
	predictFeatures   domain.FeatureVector
	predictPincode    string
	predictLimit      int
	predictByDistance bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run one prediction and print the result",
	Long: `Classifies the given features. On risk, geocodes the pincode and prints the
nearest hospitals found by OpenStreetMap.

$ strokerisk predict --gender 1 --age 67 --heart-disease 1 --ever-married 1 \
    --work-type 2 --residence-type 1 --avg-glucose-level 228.69 --bmi 36.6 \
    --smoking-status 1 --pincode 560001
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("limit") {
			predictLimit = cfg.DisplayLimit
		}
		if !cmd.Flags().Changed("sort-by-distance") {
			predictByDistance = cfg.SortByDistance
		}

		if err := predictFeatures.Validate(); err != nil {
			return err
		}
		pincode, err := domain.NormalizePincode(predictPincode)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Pipeline.Run(cmd.Context(), services.PredictRequest{
			Features: predictFeatures,
			Pincode:  pincode,
		})
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), services.BuildView(res, predictLimit, predictByDistance).Text())
		return nil
	},
}

func init() {
	f := predictCmd.Flags()
	f.Float64Var(&predictFeatures.Gender, "gender", 0, "0 female, 1 male, 2 other")
	f.Float64Var(&predictFeatures.Age, "age", 0, "age in years")
	f.Float64Var(&predictFeatures.Hypertension, "hypertension", 0, "1 if hypertensive")
	f.Float64Var(&predictFeatures.HeartDisease, "heart-disease", 0, "1 if heart disease")
	f.Float64Var(&predictFeatures.EverMarried, "ever-married", 0, "1 if ever married")
	f.Float64Var(&predictFeatures.WorkType, "work-type", 0, "encoded work type, 0-4")
	f.Float64Var(&predictFeatures.ResidenceType, "residence-type", 0, "0 rural, 1 urban")
	f.Float64Var(&predictFeatures.AvgGlucoseLevel, "avg-glucose-level", 0, "average glucose level (mg/dL)")
	f.Float64Var(&predictFeatures.BMI, "bmi", 0, "body mass index")
	f.Float64Var(&predictFeatures.SmokingStatus, "smoking-status", 0, "encoded smoking status, 0-3")
	f.StringVar(&predictPincode, "pincode", "", "postal code used to locate nearby hospitals")
	f.IntVar(&predictLimit, "limit", services.DefaultDisplayLimit, "number of hospitals to print")
	f.BoolVar(&predictByDistance, "sort-by-distance", false, "order hospitals by distance instead of search order")

	for _, name := range []string{"age", "avg-glucose-level", "bmi"} {
		_ = predictCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(predictCmd)
}
