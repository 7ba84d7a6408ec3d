package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kollektivlab/access/evaluate"
	"github.com/kollektivlab/access/model"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <stopId>",
	Short: "Evaluate transit accessibility around a stop area",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluate,
}

var (
	walkSpeed        float64
	searchRange      int32
	moveableDistance int32
	minimumRange     int32
	statsMask        uint32
)

func init() {
	evaluateCmd.Flags().Float64VarP(&walkSpeed, "walk-speed", "", 1.4, "walking speed, m/s")
	evaluateCmd.Flags().Int32VarP(&searchRange, "search-range", "", 1000, "population radius, meters")
	evaluateCmd.Flags().Int32VarP(&moveableDistance, "moveable-distance", "", 1000, "max walk to/from stops, meters")
	evaluateCmd.Flags().Int32VarP(&minimumRange, "minimum-range", "", 0, "exclude commutes at most this short, meters")
	evaluateCmd.Flags().Uint32VarP(&statsMask, "stats", "", evaluate.CollectAll&^evaluate.IncludeRefs, "stat collection bit mask")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	configureLogging()

	origin, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid stop id: %w", err)
	}

	tt, err := loadTimetable()
	if err != nil {
		return err
	}
	ppl, err := loadPeople()
	if err != nil {
		return err
	}

	evaluator := evaluate.New(ppl, tt)
	stats := evaluator.Evaluate(model.StopID(origin), evaluate.Options{
		InterestingStop:  model.StopID(origin),
		WalkSpeed:        walkSpeed,
		SearchRange:      searchRange,
		MoveableDistance: moveableDistance,
		MinimumRange:     minimumRange,
		StatsToCollect:   statsMask,
		RoutingOptions:   routingOptions(tt),
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
