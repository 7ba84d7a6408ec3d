package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/model"
)

func TestParseStopTimes(t *testing.T) {
	content := `
trip_id,arrival_time,departure_time,stop_id,stop_sequence,shape_dist_traveled
101,08:00:00,08:00:30,9022014001760001,1,0
101,25:10:00,25:10:00,9022014001960001,2,5230.5`

	stopTimes, err := ParseStopTimes(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	require.Len(t, stopTimes, 2)

	assert.Equal(t, model.TripID(101), stopTimes[0].TripID)
	assert.Equal(t, model.Time(8*3600), stopTimes[0].Arrival)
	assert.Equal(t, model.Time(8*3600+30), stopTimes[0].Departure)
	assert.Equal(t, model.StopID(9022014001760001), stopTimes[0].StopID)
	assert.Equal(t, int32(1), stopTimes[0].StopSequence)

	// After-midnight times pass through beyond 86400.
	assert.Equal(t, model.Time(25*3600+600), stopTimes[1].Arrival)
	assert.Equal(t, 5230.5, stopTimes[1].ShapeDistTravelled)
}

func TestParseStopTimesErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{
			"bad_time",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
101,8:61:00,8:00:00,9022014001760001,1`,
		},
		{
			"missing_stop",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
101,8:00:00,8:00:00,,1`,
		},
		{
			"zero_sequence",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
101,8:00:00,8:00:00,9022014001760001,0`,
		},
		{
			"two_part_time",
			`
trip_id,arrival_time,departure_time,stop_id,stop_sequence
101,8:00,8:00,9022014001760001,1`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStopTimes(strings.NewReader(strings.TrimSpace(tc.content)))
			assert.Error(t, err)
		})
	}
}

func TestParseTime(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out model.Time
		err bool
	}{
		{"00:00:00", 0, false},
		{"8:05:30", 8*3600 + 5*60 + 30, false},
		{"23:59:59", 86399, false},
		{"26:00:00", 26 * 3600, false},
		{"12:60:00", 0, true},
		{"12:00:61", 0, true},
		{"garbage", 0, true},
		{"-1:00:00", 0, true},
	} {
		got, err := parseTime(tc.in)
		if tc.err {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.out, got, tc.in)
	}
}
