package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type transferCSV struct {
	FromStopID      uint64 `csv:"from_stop_id"`
	ToStopID        uint64 `csv:"to_stop_id"`
	TransferType    int8   `csv:"transfer_type"`
	MinTransferTime int32  `csv:"min_transfer_time"`
	FromTripID      uint64 `csv:"from_trip_id"`
	ToTripID        uint64 `csv:"to_trip_id"`
}

func ParseTransfers(data io.Reader) ([]model.Transfer, error) {
	rows := []*transferCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling transfers csv: %w", err)
	}

	transfers := make([]model.Transfer, 0, len(rows))
	for _, row := range rows {
		if row.FromStopID == 0 || row.ToStopID == 0 {
			return nil, fmt.Errorf("transfer with missing stop reference")
		}
		if row.MinTransferTime < 0 {
			return nil, fmt.Errorf("negative min_transfer_time for transfer %d->%d",
				row.FromStopID, row.ToStopID)
		}

		transfers = append(transfers, model.Transfer{
			FromStopID:      model.StopID(row.FromStopID),
			ToStopID:        model.StopID(row.ToStopID),
			Type:            model.TransferType(row.TransferType),
			MinTransferTime: row.MinTransferTime,
			FromTripID:      model.TripID(row.FromTripID),
			ToTripID:        model.TripID(row.ToTripID),
		})
	}

	return transfers, nil
}
