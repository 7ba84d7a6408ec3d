package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type tripCSV struct {
	RouteID     uint64 `csv:"route_id"`
	ServiceID   int32  `csv:"service_id"`
	ID          uint64 `csv:"trip_id"`
	Headsign    string `csv:"trip_headsign"`
	DirectionID int32  `csv:"direction_id"`
	ShapeID     uint64 `csv:"shape_id"`
}

func ParseTrips(data io.Reader) ([]model.Trip, error) {
	rows := []*tripCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling trips csv: %w", err)
	}

	seen := map[model.TripID]bool{}
	trips := make([]model.Trip, 0, len(rows))
	for _, row := range rows {
		id := model.TripID(row.ID)
		if id == model.WalkTrip {
			return nil, fmt.Errorf("trip_id 0 is reserved")
		}
		if seen[id] {
			return nil, fmt.Errorf("repeated trip_id '%d'", row.ID)
		}
		seen[id] = true

		trips = append(trips, model.Trip{
			RouteID:     model.RouteID(row.RouteID),
			ServiceID:   model.ServiceID(row.ServiceID),
			ID:          id,
			Headsign:    row.Headsign,
			DirectionID: row.DirectionID,
			ShapeID:     model.ShapeID(row.ShapeID),
		})
	}

	return trips, nil
}
