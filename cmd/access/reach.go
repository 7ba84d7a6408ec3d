package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/routing"
)

var reachCmd = &cobra.Command{
	Use:   "reach <stopId>",
	Short: "List stops reachable from a stop area with travel times",
	Args:  cobra.ExactArgs(1),
	RunE:  reach,
}

func init() {
	rootCmd.AddCommand(reachCmd)
}

func reach(cmd *cobra.Command, args []string) error {
	configureLogging()

	origin, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid stop id: %w", err)
	}

	tt, err := loadTimetable()
	if err != nil {
		return err
	}

	result := tt.ShortestPaths(model.StopID(origin), routingOptions(tt))
	if len(result) == 0 {
		return fmt.Errorf("stop %d is unknown or unreachable", origin)
	}

	type row struct {
		id    model.StopID
		state *routing.StopState
	}
	rows := make([]row, 0, len(result))
	for id, state := range result {
		rows = append(rows, row{id, state})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].state.TravelTime < rows[j].state.TravelTime
	})

	for _, r := range rows {
		name := ""
		if stop, ok := tt.Stops[r.id]; ok {
			name = stop.Name
		}
		fmt.Printf("%16d  %-30s %s\n", r.id, name, routing.PrettyTravelTime(r.state.TravelTime))
	}
	return nil
}
