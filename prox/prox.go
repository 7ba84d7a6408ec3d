// Package prox answers radius queries over the stop areas of a
// timetable. Stops are kept sorted by (lat, lon) so a query only
// scans the latitude band covering the search circle.
package prox

import (
	"math"
	"sort"

	"github.com/kollektivlab/access/geo"
	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/routing"
)

// earthRadius is the mean earth radius in meters, matching the
// equirectangular distance approximation used below.
const earthRadius = 6371009

type indexedStop struct {
	id  model.StopID
	lat float64
	lon float64
}

type Prox struct {
	stops []indexedStop
}

// StopDistance pairs a stop area with its distance from the query
// coordinate in meters.
type StopDistance struct {
	StopID   model.StopID
	Distance float64
}

// StopDelay pairs a stop area with the walking time to reach it in
// seconds.
type StopDelay struct {
	StopID  model.StopID
	Seconds int32
}

// New indexes the stop areas of tt.
func New(tt *routing.Timetable) *Prox {
	stops := make([]indexedStop, 0, len(tt.Stops))
	for _, s := range tt.Stops {
		stops = append(stops, indexedStop{id: s.ID, lat: s.Lat, lon: s.Lon})
	}
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].lat != stops[j].lat {
			return stops[i].lat < stops[j].lat
		}
		return stops[i].lon < stops[j].lon
	})
	return &Prox{stops: stops}
}

func toRadian(deg float64) float64 { return deg * (math.Pi / 180) }

func meterToDegreeLat(meters float64) float64 { return meters / 111320 }

func meterToDegreeLon(meters, lat float64) float64 {
	return meters / (111320 * math.Cos(toRadian(lat)))
}

// distance is the equirectangular approximation of the great-circle
// distance, using the cosine of the mean latitude.
func distance(lat1, lat2, lon1, lon2 float64) float64 {
	meanLat := toRadian((lat1 + lat2) / 2)
	deltaLat := toRadian(lat2 - lat1)
	deltaLon := toRadian(lon2 - lon1)
	c := deltaLat*deltaLat + math.Pow(math.Cos(meanLat)*deltaLon, 2)
	return earthRadius * math.Sqrt(c)
}

// StopsWithinMeters returns every stop area strictly closer than r
// meters to coord, with its distance.
func (p *Prox) StopsWithinMeters(coord geo.DMSCoord, r float64) []StopDistance {
	lowerLat := coord.Lat - meterToDegreeLat(r)
	lowerLon := coord.Lon - meterToDegreeLon(r, coord.Lat)
	upperLat := coord.Lat + meterToDegreeLat(r)
	upperLon := coord.Lon + meterToDegreeLon(r, coord.Lat)

	start := sort.Search(len(p.stops), func(i int) bool {
		s := p.stops[i]
		return s.lat > lowerLat || (s.lat == lowerLat && s.lon >= lowerLon)
	})
	end := sort.Search(len(p.stops), func(i int) bool {
		s := p.stops[i]
		return s.lat > upperLat || (s.lat == upperLat && s.lon > upperLon)
	})

	var found []StopDistance
	for i := start; i < end; i++ {
		s := p.stops[i]
		d := distance(coord.Lat, s.lat, coord.Lon, s.lon)
		if d < r {
			found = append(found, StopDistance{StopID: s.id, Distance: d})
		}
	}
	return found
}

// NaiveStopsWithinMeters is the linear-scan reference for
// StopsWithinMeters, kept for equivalence testing.
func (p *Prox) NaiveStopsWithinMeters(coord geo.DMSCoord, r float64) []StopDistance {
	var found []StopDistance
	for _, s := range p.stops {
		d := distance(coord.Lat, s.lat, coord.Lon, s.lon)
		if d < r {
			found = append(found, StopDistance{StopID: s.id, Distance: d})
		}
	}
	return found
}

// StopsWithDelayMultiplier returns each stop area within r meters of
// coord together with the seconds needed to walk there at walkSpeed
// meters per second.
func (p *Prox) StopsWithDelayMultiplier(coord geo.DMSCoord, r, walkSpeed float64) []StopDelay {
	stops := p.StopsWithinMeters(coord, r)
	delays := make([]StopDelay, 0, len(stops))
	for _, s := range stops {
		delays = append(delays, StopDelay{
			StopID:  s.StopID,
			Seconds: int32(s.Distance / walkSpeed),
		})
	}
	return delays
}
