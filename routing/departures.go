package routing

import (
	"sort"

	"github.com/kollektivlab/access/model"
)

// Departure is one boardable vehicle leaving a stop area.
type Departure struct {
	StopID       model.StopID  `json:"stopId"`
	RouteID      model.RouteID `json:"routeId"`
	TripID       model.TripID  `json:"tripId"`
	StopSequence int32         `json:"stopSequence"`
	DirectionID  int32         `json:"directionId"`
	Departure    model.Time    `json:"departure"`
	Headsign     string        `json:"headsign"`
}

// Departures returns boardable departures from a stop area on a date
// within [from, from+window), soonest first. The last call of a trip
// is not boardable and is skipped. numDepartures < 0 means no limit.
func (tt *Timetable) Departures(
	stopID model.StopID,
	date model.Date,
	from model.Time,
	window int32,
	numDepartures int,
) []Departure {

	departures := []Departure{}
	if numDepartures == 0 {
		return departures
	}

	all := tt.StopTimesByStop[stopID]
	i := sort.Search(len(all), func(i int) bool {
		return all[i].Departure >= from
	})

	for ; i < len(all) && int32(all[i].Departure) < int32(from)+window; i++ {
		st := all[i]
		trip, ok := tt.Trips[st.TripID]
		if !ok {
			continue
		}
		if !tt.serviceActiveOn(trip.ServiceID, date) {
			continue
		}
		if int(st.StopSequence) >= len(trip.StopTimes) {
			continue
		}

		headsign := st.Headsign
		if headsign == "" {
			headsign = trip.Headsign
		}
		if headsign == "" {
			headsign = tt.lastStopName(trip)
		}

		departures = append(departures, Departure{
			StopID:       stopID,
			RouteID:      trip.RouteID,
			TripID:       st.TripID,
			StopSequence: st.StopSequence,
			DirectionID:  trip.DirectionID,
			Departure:    st.Departure,
			Headsign:     headsign,
		})
	}

	sort.SliceStable(departures, func(i, j int) bool {
		return departures[i].Departure < departures[j].Departure
	})

	if numDepartures >= 0 && len(departures) > numDepartures {
		departures = departures[:numDepartures]
	}
	return departures
}

func (tt *Timetable) lastStopName(trip *Trip) string {
	if len(trip.StopTimes) == 0 {
		return ""
	}
	last := trip.StopTimes[len(trip.StopTimes)-1]
	if stop, ok := tt.Stops[last.StopID]; ok {
		return stop.Name
	}
	return ""
}
