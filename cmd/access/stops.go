package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kollektivlab/access/geo"
	"github.com/kollektivlab/access/prox"
)

var stopsCmd = &cobra.Command{
	Use:   "stops [lat lon] [radius]",
	Short: "List stop areas, optionally near a geographical location",
	Args:  cobra.RangeArgs(0, 3),
	RunE:  stops,
}

func init() {
	rootCmd.AddCommand(stopsCmd)
}

func stops(cmd *cobra.Command, args []string) error {
	configureLogging()

	tt, err := loadTimetable()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		type entry struct {
			id   uint64
			name string
		}
		all := make([]entry, 0, len(tt.Stops))
		for id, stop := range tt.Stops {
			all = append(all, entry{uint64(id), stop.Name})
		}
		sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
		for _, e := range all {
			fmt.Printf("%16d  %s\n", e.id, e.name)
		}
		return nil
	}

	if len(args) == 1 {
		return fmt.Errorf("missing lon")
	}

	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid lon: %w", err)
	}
	radius := 500.0
	if len(args) == 3 {
		radius, err = strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid radius: %w", err)
		}
		if radius <= 0 {
			return fmt.Errorf("radius must be > 0")
		}
	}

	index := prox.New(tt)
	found := index.StopsWithinMeters(geo.DMSCoord{Lat: lat, Lon: lon}, radius)
	sort.Slice(found, func(i, j int) bool { return found[i].Distance < found[j].Distance })

	for _, sd := range found {
		name := ""
		if stop, ok := tt.Stops[sd.StopID]; ok {
			name = stop.Name
		}
		fmt.Printf("%16d  %-30s %.0f m\n", uint64(sd.StopID), name, sd.Distance)
	}
	return nil
}
