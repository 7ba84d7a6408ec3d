package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/model"
)

func TestParseTrips(t *testing.T) {
	content := `
route_id,service_id,trip_id,trip_headsign,direction_id,shape_id
9011014001600000,1,9015014001600001,Centralstationen,0,9015014001600901
9011014001600000,1,9015014001600002,Frölunda,1,9015014001600902`

	trips, err := ParseTrips(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	require.Len(t, trips, 2)

	assert.Equal(t, model.Trip{
		RouteID:     9011014001600000,
		ServiceID:   1,
		ID:          9015014001600001,
		Headsign:    "Centralstationen",
		DirectionID: 0,
		ShapeID:     9015014001600901,
	}, trips[0])
	assert.Equal(t, int32(1), trips[1].DirectionID)
}

func TestParseTripsErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{
			"reserved_id",
			`
route_id,service_id,trip_id
100,1,0`,
		},
		{
			"repeated_id",
			`
route_id,service_id,trip_id
100,1,7
100,1,7`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTrips(strings.NewReader(strings.TrimSpace(tc.content)))
			assert.Error(t, err)
		})
	}
}

func TestParseRoutes(t *testing.T) {
	content := `
route_id,agency_id,route_short_name,route_long_name,route_type,route_desc
9011014001600000,17,16,,5,Stombuss`

	routes, err := ParseRoutes(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "16", routes[0].ShortName)
	assert.Equal(t, 5, routes[0].Type)
	assert.Equal(t, model.AgencyID(17), routes[0].AgencyID)
}

func TestParseRoutesNameless(t *testing.T) {
	content := `
route_id,agency_id,route_short_name,route_long_name,route_type
9011014001600000,17,,,5`
	_, err := ParseRoutes(strings.NewReader(strings.TrimSpace(content)))
	assert.Error(t, err)
}

func TestParseShapes(t *testing.T) {
	content := `
shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence,shape_dist_traveled
9015014001600901,57.7089,11.9746,1,0
9015014001600901,57.7095,11.9752,2,85.3`

	points, err := ParseShapes(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, model.ShapeID(9015014001600901), points[0].ShapeID)
	assert.Equal(t, 85.3, points[1].DistTravelled)
	assert.Equal(t, int32(2), points[1].Sequence)
}

func TestParseFeedInfo(t *testing.T) {
	content := `
feed_id,feed_publisher_name,feed_publisher_url,feed_lang,feed_version
vt,Västtrafik,https://www.vasttrafik.se,sv,20221118`

	info, err := ParseFeedInfo(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	assert.Equal(t, "Västtrafik", info.PublisherName)
	assert.Equal(t, "20221118", info.Version)
}
