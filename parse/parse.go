// Package parse decodes the delimited-text transit feed and the
// resident dataset into the typed records the core consumes. Any
// malformed or out-of-range field is fatal to the load; referential
// checks against other files happen later, at timetable build.
package parse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"github.com/kollektivlab/access/model"
)

// Feed holds one fully parsed static feed.
type Feed struct {
	Agencies      []model.Agency
	Stops         []model.Stop
	Routes        []model.Route
	Trips         []model.Trip
	StopTimes     []model.StopTime
	Calendars     []model.Calendar
	CalendarDates []model.CalendarDate
	Transfers     []model.Transfer
	ShapePoints   []model.ShapePoint
	FeedInfo      *model.FeedInfo
}

func init() {
	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})
}

// ParseFeed reads a directory of feed files. transfers.txt,
// shapes.txt, feed_info.txt and either calendar file may be absent;
// the rest are required.
func ParseFeed(dir string) (*Feed, error) {
	feed := &Feed{}

	open := func(name string) (io.ReadCloser, error) {
		f, err := os.Open(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			return nil, nil
		}
		return f, err
	}

	required := []string{"agency.txt", "stops.txt", "routes.txt", "trips.txt", "stop_times.txt"}
	for _, name := range required {
		f, err := open(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		if f == nil {
			return nil, fmt.Errorf("missing %s", name)
		}
		defer f.Close()

		switch name {
		case "agency.txt":
			feed.Agencies, err = ParseAgencies(f)
		case "stops.txt":
			feed.Stops, err = ParseStops(f)
		case "routes.txt":
			feed.Routes, err = ParseRoutes(f)
		case "trips.txt":
			feed.Trips, err = ParseTrips(f)
		case "stop_times.txt":
			feed.StopTimes, err = ParseStopTimes(f)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	}

	optional := []string{"calendar.txt", "calendar_dates.txt", "transfers.txt", "shapes.txt", "feed_info.txt"}
	for _, name := range optional {
		f, err := open(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		if f == nil {
			continue
		}
		defer f.Close()

		switch name {
		case "calendar.txt":
			feed.Calendars, err = ParseCalendars(f)
		case "calendar_dates.txt":
			feed.CalendarDates, err = ParseCalendarDates(f)
		case "transfers.txt":
			feed.Transfers, err = ParseTransfers(f)
		case "shapes.txt":
			feed.ShapePoints, err = ParseShapes(f)
		case "feed_info.txt":
			feed.FeedInfo, err = ParseFeedInfo(f)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	}

	if feed.Calendars == nil && feed.CalendarDates == nil {
		return nil, fmt.Errorf("missing calendar.txt and calendar_dates.txt")
	}

	return feed, nil
}

// parseTime turns a "H:MM:SS" field into seconds since midnight.
// Hours may exceed 23 for after-midnight stop times.
func parseTime(s string) (model.Time, error) {
	split := strings.Split(s, ":")
	if len(split) != 3 {
		return 0, fmt.Errorf("found %d parts in '%s'", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		j, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return 0, fmt.Errorf("non-integer in '%s' pos %d", s, i)
		}
		hms[i] = j
	}

	if hms[0] < 0 || hms[0] > 99 {
		return 0, fmt.Errorf("invalid hour in '%s'", s)
	}
	if hms[1] < 0 || hms[1] > 59 {
		return 0, fmt.Errorf("invalid minute in '%s'", s)
	}
	if hms[2] < 0 || hms[2] > 59 {
		return 0, fmt.Errorf("invalid second in '%s'", s)
	}

	return model.Time(hms[0]*3600 + hms[1]*60 + hms[2]), nil
}

func parseDate(s string) (model.Date, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("date '%s' is not on form yyyymmdd", s)
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("non-integer date '%s'", s)
	}
	if d/100%100 < 1 || d/100%100 > 12 || d%100 < 1 || d%100 > 31 {
		return 0, fmt.Errorf("date '%s' out of range", s)
	}
	return model.Date(d), nil
}
