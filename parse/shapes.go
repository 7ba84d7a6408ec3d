package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/kollektivlab/access/model"
)

type shapeCSV struct {
	ShapeID       uint64  `csv:"shape_id"`
	Lat           float64 `csv:"shape_pt_lat"`
	Lon           float64 `csv:"shape_pt_lon"`
	Sequence      int32   `csv:"shape_pt_sequence"`
	DistTravelled float64 `csv:"shape_dist_traveled"`
}

func ParseShapes(data io.Reader) ([]model.ShapePoint, error) {
	points := []model.ShapePoint{}

	i := -1
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *shapeCSV) error {
		i += 1
		if row.ShapeID == 0 {
			return errors.Errorf("missing shape_id (row %d)", i+1)
		}
		points = append(points, model.ShapePoint{
			ShapeID:       model.ShapeID(row.ShapeID),
			Lat:           row.Lat,
			Lon:           row.Lon,
			Sequence:      row.Sequence,
			DistTravelled: row.DistTravelled,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling shapes csv")
	}

	return points, nil
}
