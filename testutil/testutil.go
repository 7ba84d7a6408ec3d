package testutil

// Helpers and fixtures for tests.

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/parse"
	"github.com/kollektivlab/access/people"
	"github.com/kollektivlab/access/routing"
)

// AreaID builds a stop-area id on the regional numbering scheme.
func AreaID(n uint64) model.StopID {
	return model.StopID(9_021_000_000_000_000 + n*1000)
}

// PlatformID builds the id of platform p of stop area n.
func PlatformID(n, p uint64) model.StopID {
	return model.StopID(9_022_000_000_000_000 + n*1000 + p)
}

// BuildFeed parses in-line feed files into typed records. Only the
// provided files are parsed; referential defaults are the caller's
// business.
func BuildFeed(t testing.TB, files map[string][]string) *parse.Feed {
	feed := &parse.Feed{}
	var err error

	read := func(name string) *strings.Reader {
		return strings.NewReader(strings.Join(files[name], "\n"))
	}

	if files["agency.txt"] != nil {
		feed.Agencies, err = parse.ParseAgencies(read("agency.txt"))
		require.NoError(t, err)
	}
	if files["stops.txt"] != nil {
		feed.Stops, err = parse.ParseStops(read("stops.txt"))
		require.NoError(t, err)
	}
	if files["routes.txt"] != nil {
		feed.Routes, err = parse.ParseRoutes(read("routes.txt"))
		require.NoError(t, err)
	}
	if files["trips.txt"] != nil {
		feed.Trips, err = parse.ParseTrips(read("trips.txt"))
		require.NoError(t, err)
	}
	if files["stop_times.txt"] != nil {
		feed.StopTimes, err = parse.ParseStopTimes(read("stop_times.txt"))
		require.NoError(t, err)
	}
	if files["calendar.txt"] != nil {
		feed.Calendars, err = parse.ParseCalendars(read("calendar.txt"))
		require.NoError(t, err)
	}
	if files["calendar_dates.txt"] != nil {
		feed.CalendarDates, err = parse.ParseCalendarDates(read("calendar_dates.txt"))
		require.NoError(t, err)
	}
	if files["transfers.txt"] != nil {
		feed.Transfers, err = parse.ParseTransfers(read("transfers.txt"))
		require.NoError(t, err)
	}
	if files["shapes.txt"] != nil {
		feed.ShapePoints, err = parse.ParseShapes(read("shapes.txt"))
		require.NoError(t, err)
	}

	return feed
}

// BuildTimetable parses in-line feed files and builds the graph.
func BuildTimetable(t testing.TB, files map[string][]string) *routing.Timetable {
	return routing.BuildTimetable(BuildFeed(t, files))
}

// Resident places one commuter with home and work on the statistics
// grid.
func Resident(homeX, homeY, workX, workY int32) model.RawPerson {
	return model.RawPerson{
		Kon:        1,
		WorkCounty: 14,
		WorkKommun: 1480,
		WorkX:      workX,
		WorkY:      workY,
		HomeCounty: 14,
		HomeKommun: 1480,
		HomeX:      homeX,
		HomeY:      homeY,
	}
}

// BuildPeople indexes a set of raw residents.
func BuildPeople(raw ...model.RawPerson) *people.People {
	return people.New(raw)
}
