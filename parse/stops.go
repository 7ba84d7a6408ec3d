package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type stopCSV struct {
	ID           uint64  `csv:"stop_id"`
	Name         string  `csv:"stop_name"`
	Lat          float64 `csv:"stop_lat"`
	Lon          float64 `csv:"stop_lon"`
	LocationType int8    `csv:"location_type"`
	// parent_station and platform_code are present in the feed but
	// unused: area membership is derivable from the id itself.
}

func ParseStops(data io.Reader) ([]model.Stop, error) {
	rows := []*stopCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling stops csv: %w", err)
	}

	seen := map[model.StopID]bool{}
	stops := make([]model.Stop, 0, len(rows))
	for _, row := range rows {
		id := model.StopID(row.ID)
		if id == 0 {
			return nil, fmt.Errorf("empty stop_id")
		}
		if seen[id] {
			return nil, fmt.Errorf("repeated stop_id '%d'", row.ID)
		}
		seen[id] = true

		if row.Name == "" {
			return nil, fmt.Errorf("empty stop_name for stop_id '%d'", row.ID)
		}
		if row.Lat == 0 || row.Lon == 0 {
			return nil, fmt.Errorf("empty stop_lat or stop_lon for stop_id '%d'", row.ID)
		}

		stops = append(stops, model.Stop{
			ID:           id,
			Name:         row.Name,
			Lat:          row.Lat,
			Lon:          row.Lon,
			LocationType: model.LocationType(row.LocationType),
		})
	}

	return stops, nil
}
