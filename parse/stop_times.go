package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/kollektivlab/access/model"
)

type stopTimeCSV struct {
	TripID             uint64  `csv:"trip_id"`
	ArrivalTime        string  `csv:"arrival_time"`
	DepartureTime      string  `csv:"departure_time"`
	StopID             uint64  `csv:"stop_id"`
	StopSequence       int32   `csv:"stop_sequence"`
	Headsign           string  `csv:"stop_headsign"`
	PickupType         int32   `csv:"pickup_type"`
	DropOffType        int32   `csv:"drop_off_type"`
	ShapeDistTravelled float64 `csv:"shape_dist_traveled"`
	Timepoint          int8    `csv:"timepoint"`
}

func ParseStopTimes(data io.Reader) ([]model.StopTime, error) {
	stopTimes := []model.StopTime{}

	i := -1
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *stopTimeCSV) error {
		i += 1
		if row.TripID == 0 {
			return errors.Errorf("missing trip_id (row %d)", i+1)
		}
		if row.StopID == 0 {
			return errors.Errorf("missing stop_id (row %d)", i+1)
		}
		if row.StopSequence < 1 {
			return errors.Errorf("stop_sequence %d below 1 (row %d)", row.StopSequence, i+1)
		}

		arrival, err := parseTime(row.ArrivalTime)
		if err != nil {
			return errors.Wrapf(err, "parsing arrival_time (row %d)", i+1)
		}
		departure, err := parseTime(row.DepartureTime)
		if err != nil {
			return errors.Wrapf(err, "parsing departure_time (row %d)", i+1)
		}

		stopTimes = append(stopTimes, model.StopTime{
			TripID:             model.TripID(row.TripID),
			Arrival:            arrival,
			Departure:          departure,
			StopID:             model.StopID(row.StopID),
			StopSequence:       row.StopSequence,
			Headsign:           row.Headsign,
			PickupType:         row.PickupType,
			DropOffType:        row.DropOffType,
			ShapeDistTravelled: row.ShapeDistTravelled,
			Timepoint:          row.Timepoint != 0,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling stop_times csv")
	}

	return stopTimes, nil
}
