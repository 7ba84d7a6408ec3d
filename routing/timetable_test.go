package routing_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/routing"
	"github.com/kollektivlab/access/testutil"
)

var (
	stopA = testutil.AreaID(1)
	stopB = testutil.AreaID(2)
	stopC = testutil.AreaID(3)
	stopD = testutil.AreaID(4)
	stopE = testutil.AreaID(5)

	platA = testutil.PlatformID(1, 1)
	platB = testutil.PlatformID(2, 1)
	platC = testutil.PlatformID(3, 1)
	platD = testutil.PlatformID(4, 1)
	platE = testutil.PlatformID(5, 1)
)

func stopRow(id model.StopID, name string, lat, lon float64, locationType int) string {
	return fmt.Sprintf("%d,%s,%f,%f,%d", uint64(id), name, lat, lon, locationType)
}

func defaultStops() []string {
	return []string{
		"stop_id,stop_name,stop_lat,stop_lon,location_type",
		stopRow(stopA, "Alpha", 57.700, 11.950, 1),
		stopRow(stopB, "Beta", 57.710, 11.960, 1),
		stopRow(stopC, "Gamma", 57.720, 11.970, 1),
		stopRow(stopD, "Delta", 57.700, 11.960, 1),
		stopRow(stopE, "Epsilon", 57.710, 11.970, 1),
		stopRow(platA, "Alpha A", 57.700, 11.950, 0),
		stopRow(platB, "Beta A", 57.710, 11.960, 0),
		stopRow(platC, "Gamma A", 57.720, 11.970, 0),
		stopRow(platD, "Delta A", 57.700, 11.960, 0),
		stopRow(platE, "Epsilon A", 57.710, 11.970, 0),
	}
}

func TestStopAreaFolding(t *testing.T) {
	assert.True(t, platA.IsStopPoint())
	assert.False(t, stopA.IsStopPoint())
	assert.Equal(t, stopA, platA.Area())
	assert.Equal(t, stopA, stopA.Area())
	assert.Equal(t, stopA, testutil.PlatformID(1, 7).Area())
}

func TestBuildTimetableFoldsStopTimes(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": defaultStops(),
		"trips.txt": {
			"route_id,service_id,trip_id,trip_headsign,direction_id,shape_id",
			"100,1,10,Gamma,0,500",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			fmt.Sprintf("10,8:00:00,8:00:00,%d,1", uint64(platA)),
			fmt.Sprintf("10,8:10:00,8:10:00,%d,2", uint64(platB)),
			fmt.Sprintf("10,8:20:00,8:20:00,%d,3", uint64(platC)),
		},
		"calendar_dates.txt": {"service_id,date,exception_type", "1,20221118,1"},
	})

	trip := tt.Trips[10]
	require.NotNil(t, trip)
	require.Len(t, trip.StopTimes, 3)

	// Stop times fold onto areas, keep their platform, and satisfy
	// the positional sequence invariant.
	for i, st := range trip.StopTimes {
		assert.Equal(t, int32(i+1), st.StopSequence)
		assert.False(t, st.StopID.IsStopPoint())
		assert.Equal(t, st.StopID, st.StopPoint.Area())
		assert.Equal(t, st, trip.StopTimes[st.StopSequence-1])
	}
	assert.Equal(t, stopA, trip.StopTimes[0].StopID)
	assert.Equal(t, stopB, trip.StopTimes[1].StopID)
	assert.Equal(t, stopC, trip.StopTimes[2].StopID)

	// Platform coordinates are kept separately from the area nodes.
	assert.Contains(t, tt.StopPoints, platA)
	assert.NotContains(t, tt.Stops, platA)
	assert.Contains(t, tt.Stops, stopA)
}

func TestBuildTimetableSortsDepartures(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": defaultStops(),
		"trips.txt": {
			"route_id,service_id,trip_id,trip_headsign,direction_id,shape_id",
			"100,1,10,Beta,0,500",
			"100,1,11,Beta,0,500",
			"100,1,12,Beta,0,500",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			fmt.Sprintf("11,9:00:00,9:00:00,%d,1", uint64(platA)),
			fmt.Sprintf("11,9:10:00,9:10:00,%d,2", uint64(platB)),
			fmt.Sprintf("10,8:00:00,8:00:00,%d,1", uint64(platA)),
			fmt.Sprintf("10,8:10:00,8:10:00,%d,2", uint64(platB)),
			fmt.Sprintf("12,8:30:00,8:30:00,%d,1", uint64(platA)),
			fmt.Sprintf("12,8:40:00,8:40:00,%d,2", uint64(platB)),
		},
		"calendar_dates.txt": {"service_id,date,exception_type", "1,20221118,1"},
	})

	departures := tt.StopTimesByStop[stopA]
	require.Len(t, departures, 3)
	for i := 1; i < len(departures); i++ {
		assert.LessOrEqual(t, departures[i-1].Departure, departures[i].Departure)
	}
	assert.Equal(t, model.TripID(10), departures[0].TripID)
	assert.Equal(t, model.TripID(12), departures[1].TripID)
	assert.Equal(t, model.TripID(11), departures[2].TripID)
}

func TestBuildTimetableGappySequencesRestamped(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": defaultStops(),
		"trips.txt": {
			"route_id,service_id,trip_id,trip_headsign,direction_id,shape_id",
			"100,1,10,Gamma,0,500",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			fmt.Sprintf("10,8:20:00,8:20:00,%d,104", uint64(platC)),
			fmt.Sprintf("10,8:00:00,8:00:00,%d,100", uint64(platA)),
			fmt.Sprintf("10,8:10:00,8:10:00,%d,102", uint64(platB)),
		},
		"calendar_dates.txt": {"service_id,date,exception_type", "1,20221118,1"},
	})

	trip := tt.Trips[10]
	require.Len(t, trip.StopTimes, 3)
	assert.Equal(t, stopA, trip.StopTimes[0].StopID)
	assert.Equal(t, int32(1), trip.StopTimes[0].StopSequence)
	assert.Equal(t, stopC, trip.StopTimes[2].StopID)
	assert.Equal(t, int32(3), trip.StopTimes[2].StopSequence)
}

func TestBuildTimetableTransfers(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": defaultStops(),
		"trips.txt": {
			"route_id,service_id,trip_id,trip_headsign,direction_id,shape_id",
			"100,1,10,Beta,0,500",
			"100,1,11,Gamma,0,501",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			fmt.Sprintf("10,8:00:00,8:00:00,%d,1", uint64(platA)),
			fmt.Sprintf("10,8:10:00,8:10:00,%d,2", uint64(platB)),
			fmt.Sprintf("11,8:12:00,8:12:00,%d,1", uint64(platB)),
			fmt.Sprintf("11,8:20:00,8:20:00,%d,2", uint64(platC)),
		},
		"transfers.txt": {
			"from_stop_id,to_stop_id,transfer_type,min_transfer_time,from_trip_id,to_trip_id",
			// Walk edges between areas, once per direction, with a
			// duplicate that must be suppressed.
			fmt.Sprintf("%d,%d,2,240,,", uint64(stopA), uint64(stopD)),
			fmt.Sprintf("%d,%d,2,240,,", uint64(stopD), uint64(stopA)),
			fmt.Sprintf("%d,%d,2,240,,", uint64(stopA), uint64(stopD)),
			// Self-transfer overrides the area's minimum transfer
			// time; a zero override is ignored.
			fmt.Sprintf("%d,%d,2,600,,", uint64(stopB), uint64(stopB)),
			fmt.Sprintf("%d,%d,2,0,,", uint64(stopC), uint64(stopC)),
			// Stay-seated connection at Beta.
			fmt.Sprintf("%d,%d,1,0,10,11", uint64(platB), uint64(platB)),
			// Stay-seated across areas is inconsistent and dropped.
			fmt.Sprintf("%d,%d,1,0,10,11", uint64(platA), uint64(platC)),
		},
		"calendar_dates.txt": {"service_id,date,exception_type", "1,20221118,1"},
	})

	alpha := tt.Stops[stopA]
	require.Len(t, alpha.TransfersWalk, 1)
	assert.Equal(t, routing.WalkEdge{To: stopD, Cost: 240}, alpha.TransfersWalk[0])

	delta := tt.Stops[stopD]
	require.Len(t, delta.TransfersWalk, 1)
	assert.Equal(t, routing.WalkEdge{To: stopA, Cost: 240}, delta.TransfersWalk[0])

	assert.Equal(t, int32(600), tt.Stops[stopB].MinTransferTime)
	assert.Equal(t, routing.DefaultMinTransferTime, tt.Stops[stopC].MinTransferTime)

	beta := tt.Stops[stopB]
	assert.Equal(t, []model.TripID{11}, beta.TransfersStay[10])
	assert.Empty(t, alpha.TransfersStay)
}

func TestBuildTimetableServiceDates(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": defaultStops(),
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			// 2022-11-14 is a Monday.
			"1,1,1,1,1,1,0,0,20221114,20221120",
		},
		"calendar_dates.txt": {
			"service_id,date,exception_type",
			"1,20221116,2",
			"1,20221119,1",
			"2,20221118,1",
		},
	})

	active := func(service model.ServiceID, date model.Date) bool {
		dates, ok := tt.ServiceDates[service]
		if !ok {
			return false
		}
		_, ok = dates[date]
		return ok
	}

	assert.True(t, active(1, 20221114))
	assert.True(t, active(1, 20221118))
	assert.False(t, active(1, 20221116), "removed by exception")
	assert.False(t, active(1, 20221112), "outside range")
	assert.True(t, active(1, 20221119), "added by exception")
	assert.False(t, active(1, 20221120), "sunday not in weekday mask")
	assert.True(t, active(2, 20221118))

	assert.Equal(t, model.Date(20221114), tt.StartDate)
	assert.Equal(t, model.Date(20221119), tt.EndDate)
}

func TestBuildTimetablePlaceholderStop(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": {
			"stop_id,stop_name,stop_lat,stop_lon,location_type",
			stopRow(stopA, "Alpha", 57.700, 11.950, 1),
			stopRow(platA, "Alpha A", 57.700, 11.950, 0),
		},
		"trips.txt": {
			"route_id,service_id,trip_id,trip_headsign,direction_id,shape_id",
			"100,1,10,Beta,0,500",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			fmt.Sprintf("10,8:00:00,8:00:00,%d,1", uint64(platA)),
			fmt.Sprintf("10,8:10:00,8:10:00,%d,2", uint64(platB)),
		},
		"calendar_dates.txt": {"service_id,date,exception_type", "1,20221118,1"},
	})

	// Beta never appears in stops.txt but is reachable, so a
	// placeholder node exists with the default transfer time.
	beta := tt.Stops[stopB]
	require.NotNil(t, beta)
	assert.Equal(t, routing.DefaultMinTransferTime, beta.MinTransferTime)
}

func TestBuildTimetableShapes(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": defaultStops(),
		"shapes.txt": {
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence,shape_dist_traveled",
			"500,57.710,11.960,2,1200.5",
			"500,57.700,11.950,1,0",
			"500,57.720,11.970,3,2400",
			"501,57.700,11.960,1,0",
		},
		"calendar_dates.txt": {"service_id,date,exception_type", "1,20221118,1"},
	})

	shape := tt.Shapes[500]
	require.Len(t, shape, 3)
	assert.Equal(t, 0.0, shape[0].DistTravelled)
	assert.Equal(t, 1200.5, shape[1].DistTravelled)
	assert.Equal(t, 2400.0, shape[2].DistTravelled)
	assert.Len(t, tt.Shapes[501], 1)
}

func TestBuildTimetableDropsOrphanStopTimes(t *testing.T) {
	tt := testutil.BuildTimetable(t, map[string][]string{
		"stops.txt": defaultStops(),
		"trips.txt": {
			"route_id,service_id,trip_id,trip_headsign,direction_id,shape_id",
			"100,1,10,Beta,0,500",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			fmt.Sprintf("10,8:00:00,8:00:00,%d,1", uint64(platA)),
			fmt.Sprintf("99,8:00:00,8:00:00,%d,1", uint64(platA)),
		},
		"calendar_dates.txt": {"service_id,date,exception_type", "1,20221118,1"},
	})

	require.Len(t, tt.StopTimesByStop[stopA], 1)
	assert.Equal(t, model.TripID(10), tt.StopTimesByStop[stopA][0].TripID)
	assert.NotContains(t, tt.Trips, model.TripID(99))
}
