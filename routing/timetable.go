// Package routing holds the in-memory timetable graph and the
// time-dependent shortest-path search over it. The graph is built
// once from parsed feed records and is read-only afterwards; any
// number of searches may run against it concurrently, each owning
// its own state.
package routing

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/kollektivlab/access/geo"
	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/parse"
)

// DefaultMinTransferTime applies at stops the feed does not override.
const DefaultMinTransferTime int32 = 300

// WalkEdge is a pre-stored type-2 transfer between two stop areas.
type WalkEdge struct {
	To   model.StopID
	Cost int32
}

// Stop is one stop area node of the graph.
type Stop struct {
	ID              model.StopID
	Name            string
	Lat             float64
	Lon             float64
	MinTransferTime int32

	// TransfersWalk holds type-2 edges to other areas, one per
	// direction. TransfersStay maps an arriving trip to the trips
	// it connects to in place (type 1).
	TransfersWalk []WalkEdge
	TransfersStay map[model.TripID][]model.TripID
}

// StopTime is a scheduled call of a trip at a stop area. StopID is
// always a stop area; the platform actually served is kept in
// StopPoint. StopSequence is 1-based and positional: the trip's
// stop-time for sequence k is Trips[t].StopTimes[k-1].
type StopTime struct {
	TripID             model.TripID
	Arrival            model.Time
	Departure          model.Time
	StopID             model.StopID
	StopSequence       int32
	ShapeDistTravelled float64
	StopPoint          model.StopID
	Headsign           string
}

type Trip struct {
	ServiceID   model.ServiceID
	DirectionID int32
	RouteID     model.RouteID
	ShapeID     model.ShapeID
	Headsign    string
	StopTimes   []StopTime
}

// ShapePoint is one vertex of a trip polyline, with the cumulative
// distance travelled at that vertex.
type ShapePoint struct {
	DistTravelled float64
	Coord         geo.DMSCoord
}

type Timetable struct {
	Stops           map[model.StopID]*Stop
	StopPoints      map[model.StopID]geo.DMSCoord
	StopTimesByStop map[model.StopID][]StopTime
	Trips           map[model.TripID]*Trip
	ServiceDates    map[model.ServiceID]map[model.Date]struct{}
	Routes          map[model.RouteID]model.Route
	Shapes          map[model.ShapeID][]ShapePoint

	StartDate model.Date
	EndDate   model.Date
}

// BuildTimetable constructs the graph from parsed feed records.
// Referential inconsistencies are logged and the offending record
// dropped; they never fail the build.
func BuildTimetable(feed *parse.Feed) *Timetable {
	tt := &Timetable{
		Stops:           map[model.StopID]*Stop{},
		StopPoints:      map[model.StopID]geo.DMSCoord{},
		StopTimesByStop: map[model.StopID][]StopTime{},
		Trips:           map[model.TripID]*Trip{},
		ServiceDates:    map[model.ServiceID]map[model.Date]struct{}{},
		Routes:          map[model.RouteID]model.Route{},
		Shapes:          map[model.ShapeID][]ShapePoint{},
	}

	for _, t := range feed.Trips {
		tt.Trips[t.ID] = &Trip{
			ServiceID:   t.ServiceID,
			DirectionID: t.DirectionID,
			RouteID:     t.RouteID,
			ShapeID:     t.ShapeID,
			Headsign:    t.Headsign,
		}
	}

	// Stop times fold onto stop areas and land in two indexes: the
	// per-trip sequence and the per-stop departure list.
	for _, raw := range feed.StopTimes {
		trip, ok := tt.Trips[raw.TripID]
		if !ok {
			log.Warn().Uint64("trip", uint64(raw.TripID)).Msg("stop time references unknown trip")
			continue
		}
		trip.StopTimes = append(trip.StopTimes, StopTime{
			TripID:            raw.TripID,
			Arrival:           raw.Arrival,
			Departure:         raw.Departure,
			StopID:            raw.StopID.Area(),
			StopSequence:      raw.StopSequence,
			ShapeDistTravelled: raw.ShapeDistTravelled,
			StopPoint:         raw.StopID,
			Headsign:          raw.Headsign,
		})
	}

	// Trip stop times are put in stop-sequence order (feeds may list
	// them out of order and number with gaps), then restamped to the
	// positional 1-based sequence so lookups by sequence are O(1).
	for _, trip := range tt.Trips {
		sort.SliceStable(trip.StopTimes, func(i, j int) bool {
			return trip.StopTimes[i].StopSequence < trip.StopTimes[j].StopSequence
		})
		for i := range trip.StopTimes {
			trip.StopTimes[i].StopSequence = int32(i) + 1
			st := trip.StopTimes[i]
			tt.StopTimesByStop[st.StopID] = append(tt.StopTimesByStop[st.StopID], st)
		}
	}

	for stopID := range tt.StopTimesByStop {
		list := tt.StopTimesByStop[stopID]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Departure < list[j].Departure
		})
	}

	tt.buildServiceDates(feed)

	for _, s := range feed.Stops {
		if s.ID.IsStopPoint() {
			tt.StopPoints[s.ID] = geo.DMSCoord{Lat: s.Lat, Lon: s.Lon}
			continue
		}
		tt.Stops[s.ID] = &Stop{
			ID:              s.ID,
			Name:            s.Name,
			Lat:             s.Lat,
			Lon:             s.Lon,
			MinTransferTime: DefaultMinTransferTime,
			TransfersStay:   map[model.TripID][]model.TripID{},
		}
	}

	// Stop areas referenced from stop times must exist even if the
	// feed omits them from stops.txt.
	for stopID := range tt.StopTimesByStop {
		if _, ok := tt.Stops[stopID]; ok {
			continue
		}
		log.Warn().Uint64("stop", uint64(stopID)).Msg("stop area missing from stops, creating placeholder")
		tt.Stops[stopID] = &Stop{
			ID:              stopID,
			MinTransferTime: DefaultMinTransferTime,
			TransfersStay:   map[model.TripID][]model.TripID{},
		}
	}

	for _, tr := range feed.Transfers {
		tt.addTransfer(tr)
	}

	for _, r := range feed.Routes {
		tt.Routes[r.ID] = r
	}

	shapePoints := append([]model.ShapePoint{}, feed.ShapePoints...)
	sort.SliceStable(shapePoints, func(i, j int) bool {
		if shapePoints[i].ShapeID != shapePoints[j].ShapeID {
			return shapePoints[i].ShapeID < shapePoints[j].ShapeID
		}
		return shapePoints[i].Sequence < shapePoints[j].Sequence
	})
	for _, p := range shapePoints {
		tt.Shapes[p.ShapeID] = append(tt.Shapes[p.ShapeID], ShapePoint{
			DistTravelled: p.DistTravelled,
			Coord:         geo.DMSCoord{Lat: p.Lat, Lon: p.Lon},
		})
	}

	return tt
}

func (tt *Timetable) buildServiceDates(feed *parse.Feed) {
	addDate := func(serviceID model.ServiceID, date model.Date) {
		dates, ok := tt.ServiceDates[serviceID]
		if !ok {
			dates = map[model.Date]struct{}{}
			tt.ServiceDates[serviceID] = dates
		}
		dates[date] = struct{}{}
		if tt.StartDate == 0 || date < tt.StartDate {
			tt.StartDate = date
		}
		if date > tt.EndDate {
			tt.EndDate = date
		}
	}

	// calendar.txt ranges expand to explicit dates; calendar_dates
	// exceptions then add (1) or remove (2) single dates.
	for _, cal := range feed.Calendars {
		for d := cal.StartDate; d <= cal.EndDate; d = d.Next() {
			if cal.Weekdays[d.Weekday()] {
				addDate(cal.ServiceID, d)
			}
		}
	}
	for _, cd := range feed.CalendarDates {
		switch cd.ExceptionType {
		case 1:
			addDate(cd.ServiceID, cd.Date)
		case 2:
			if dates, ok := tt.ServiceDates[cd.ServiceID]; ok {
				delete(dates, cd.Date)
			}
		}
	}
}

func (tt *Timetable) addTransfer(tr model.Transfer) {
	switch tr.Type {
	case model.TransferStaySeated:
		fromArea := tr.FromStopID.Area()
		if fromArea != tr.ToStopID.Area() {
			log.Warn().
				Uint64("from", uint64(tr.FromStopID)).
				Uint64("to", uint64(tr.ToStopID)).
				Msg("stay-seated transfer between distinct stop areas")
			return
		}
		stop, ok := tt.Stops[fromArea]
		if !ok {
			log.Warn().Uint64("stop", uint64(fromArea)).Msg("transfer references unknown stop area")
			return
		}
		if tr.FromTripID == model.WalkTrip || tr.ToTripID == model.WalkTrip {
			log.Warn().Uint64("stop", uint64(fromArea)).Msg("stay-seated transfer missing trip reference")
			return
		}
		stop.TransfersStay[tr.FromTripID] = append(stop.TransfersStay[tr.FromTripID], tr.ToTripID)

	case model.TransferWalk:
		fromArea := tr.FromStopID.Area()
		toArea := tr.ToStopID.Area()
		if tr.FromStopID == tr.ToStopID {
			// A self-transfer on a stop area overrides that
			// area's minimum transfer time.
			if !tr.FromStopID.IsStopPoint() && tr.MinTransferTime > 0 {
				if stop, ok := tt.Stops[fromArea]; ok {
					stop.MinTransferTime = tr.MinTransferTime
				}
			}
			return
		}
		if fromArea == toArea {
			return
		}
		stop, ok := tt.Stops[fromArea]
		if !ok {
			log.Warn().Uint64("stop", uint64(fromArea)).Msg("transfer references unknown stop area")
			return
		}
		for _, e := range stop.TransfersWalk {
			if e.To == toArea {
				return
			}
		}
		stop.TransfersWalk = append(stop.TransfersWalk, WalkEdge{To: toArea, Cost: tr.MinTransferTime})
	}
}

func (tt *Timetable) serviceActiveOn(serviceID model.ServiceID, date model.Date) bool {
	dates, ok := tt.ServiceDates[serviceID]
	if !ok {
		return false
	}
	_, ok = dates[date]
	return ok
}

// PrettyTravelTime formats a travel time in seconds for reports.
func PrettyTravelTime(seconds int32) string {
	if seconds < 60 {
		return fmt.Sprintf("%d s", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%d min %d s", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d h %d min", seconds/3600, seconds/60%60)
}
