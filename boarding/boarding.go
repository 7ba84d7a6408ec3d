// Package boarding loads the average-boardings table published per
// stop area. The table is loaded once at startup and passed to its
// consumers; it carries no other state.
package boarding

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/kollektivlab/access/model"
)

// Stats maps a stop area to its average daily boardings.
type Stats map[model.StopID]int

type statCSV struct {
	StopID     uint64 `csv:"stop_id"`
	Passengers int    `csv:"passengers"`
}

func Parse(r io.Reader) (Stats, error) {
	stats := Stats{}

	i := -1
	err := gocsv.UnmarshalToCallbackWithError(r, func(row *statCSV) error {
		i += 1
		if row.StopID == 0 {
			return errors.Errorf("missing stop_id (row %d)", i+1)
		}
		stats[model.StopID(row.StopID)] = row.Passengers
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling boarding statistics csv")
	}

	return stats, nil
}

func Load(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening boarding statistics")
	}
	defer f.Close()
	return Parse(f)
}

// IsImportant reports whether the stop has recorded boardings.
func (s Stats) IsImportant(stopID model.StopID) bool {
	_, ok := s[stopID]
	return ok
}
