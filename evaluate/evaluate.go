// Package evaluate composes walk-ride-walk journeys for every
// commuter around an origin stop and aggregates them into an
// accessibility report. One Evaluate call owns all of its mutable
// state; the timetable, resident table and stop index are shared
// read-only, so calls may run concurrently.
package evaluate

import (
	"math"

	"github.com/kollektivlab/access/geo"
	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/people"
	"github.com/kollektivlab/access/prox"
	"github.com/kollektivlab/access/routing"
)

// Options for one evaluation.
type Options struct {
	// InterestingStop is counted in hasThisAsOptimal whenever it is
	// some resident's optimal boarding stop.
	InterestingStop model.StopID
	// WalkSpeed converts walking distances to seconds, in m/s.
	WalkSpeed float64
	// SearchRange selects the evaluated population around the
	// origin, in meters.
	SearchRange int32
	// MoveableDistance is how far a resident walks to a boarding
	// stop, and from an alighting stop to work.
	MoveableDistance int32
	// MinimumRange excludes residents whose commute is at most this
	// short.
	MinimumRange int32

	StatsToCollect uint32

	RoutingOptions routing.Options
}

type Evaluator struct {
	people *people.People
	prox   *prox.Prox
	tt     *routing.Timetable

	// search is the per-origin shortest-path function; swappable in
	// tests.
	search func(model.StopID, routing.Options) map[model.StopID]*routing.StopState
}

func New(ppl *people.People, tt *routing.Timetable) *Evaluator {
	return &Evaluator{
		people: ppl,
		prox:   prox.New(tt),
		tt:     tt,
		search: tt.ShortestPaths,
	}
}

// leg is one stop-pair hop of a reconstructed journey.
type leg struct {
	from model.StopID
	to   model.StopID
	trip model.TripID
	seq  int32
}

// Evaluate runs the full analysis around originStop. An unknown stop
// yields an empty Stats; no degradation is ever an error.
func (e *Evaluator) Evaluate(originStop model.StopID, opts Options) Stats {
	stats := newStats(opts)
	if opts.StatsToCollect&IncludeRefs != 0 {
		stats.Timetable = e.tt
		stats.Options = &opts
	}

	origin, ok := e.tt.Stops[originStop]
	if !ok {
		return stats
	}
	originCoord := geo.DMSCoord{Lat: origin.Lat, Lon: origin.Lon}.ToMeter()

	residents := e.people.PersonsInCircle(originCoord, opts.SearchRange)
	stats.PersonsWithinRange = uint64(len(residents))

	filtered := make([]people.Person, 0, len(residents))
	for _, person := range residents {
		if person.WorkCoord.DistanceToLEQ(person.HomeCoord, opts.MinimumRange) {
			stats.ExcludedWithinMinimumRange++
			continue
		}
		filtered = append(filtered, person)
	}

	// Walkable boarding stops are computed once per populated home
	// cell. Cells outside the seeded circle (possible when the
	// search range exceeds the moveable distance) fill in lazily.
	cells := e.people.PopulatedCellsInCircle(originCoord, opts.MoveableDistance)
	stats.UniqueSpots = uint64(len(cells))

	walkableStops := make(map[geo.MeterCoord][]prox.StopDelay, len(cells))
	for _, c := range cells {
		walkableStops[c] = e.prox.StopsWithDelayMultiplier(
			c.ToDMS(), float64(opts.MoveableDistance), opts.WalkSpeed)
	}
	walkable := func(c geo.MeterCoord) []prox.StopDelay {
		if stops, ok := walkableStops[c]; ok {
			return stops
		}
		stops := e.prox.StopsWithDelayMultiplier(
			c.ToDMS(), float64(opts.MoveableDistance), opts.WalkSpeed)
		walkableStops[c] = stops
		return stops
	}

	// One search per distinct boarding stop, shared by every
	// resident who can walk there.
	dijkstraCache := map[model.StopID]map[model.StopID]*routing.StopState{}
	reachFrom := func(stop model.StopID) map[model.StopID]*routing.StopState {
		if reach, ok := dijkstraCache[stop]; ok {
			return reach
		}
		reach := e.search(stop, opts.RoutingOptions)
		dijkstraCache[stop] = reach
		return reach
	}

	for _, person := range filtered {
		boardings := walkable(person.HomeCoord)
		egress := e.prox.StopsWithDelayMultiplier(
			person.WorkCoord.ToDMS(), float64(opts.MoveableDistance), opts.WalkSpeed)

		if opts.StatsToCollect&CollectDistStartStops != 0 {
			stats.DistNumberOfStartStops[uint64(len(boardings))]++
		}
		if opts.StatsToCollect&CollectDistEndStops != 0 {
			stats.DistNumberOfEndStops[uint64(len(egress))]++
		}

		if len(egress) == 0 {
			stats.UnreachableWorks++
			continue
		}

		best := PersonPath{TimeAtGoal: math.MaxInt32}
		var bestReach map[model.StopID]*routing.StopState
		found := false

		for _, boarding := range boardings {
			reach := reachFrom(boarding.StopID)
			for _, goal := range egress {
				state, ok := reach[goal.StopID]
				if !ok {
					continue
				}
				total := boarding.Seconds + state.TravelTime + goal.Seconds
				if total < best.TimeAtGoal {
					best = PersonPath{
						FirstStop:        boarding.StopID,
						TimeToFirstStop:  boarding.Seconds,
						SecondStop:       goal.StopID,
						TimeToSecondStop: state.TravelTime,
						TimeToGoal:       goal.Seconds,
						TimeAtGoal:       total,
						TimestampAtGoal:  model.Time(total) + opts.RoutingOptions.StartTime,
					}
					bestReach = reach
					found = true
				}
			}
		}

		if !found {
			continue
		}

		stats.PersonsCanGoWithBus++
		if best.FirstStop == opts.InterestingStop {
			stats.HasThisAsOptimal++
		}
		if opts.StatsToCollect&CollectOptimalFirstStop != 0 {
			stats.OptimalFirstStop[best.FirstStop]++
		}

		if opts.StatsToCollect&(CollectPaths|CollectExtractedPaths|CollectExtractedShapes) != 0 {
			legs := extractLegs(bestReach, best.SecondStop)
			e.countTransfers(&stats, legs)

			if opts.StatsToCollect&CollectExtractedPaths != 0 {
				best.ExtractedPath = pathOf(legs)
			}
			if opts.StatsToCollect&CollectExtractedShapes != 0 {
				for _, l := range legs {
					e.addShapeSegment(&stats, l)
				}
			}
			if opts.StatsToCollect&CollectPaths != 0 {
				stats.AllPaths = append(stats.AllPaths, best)
			}
		}
	}

	return stats
}

// extractLegs walks the incoming pointers back from goal to the
// search origin. At each stop the predecessor staying on the current
// trip is preferred, so tying alternatives resolve to the journey
// with fewest transfers. An unreachable goal yields no legs.
func extractLegs(reach map[model.StopID]*routing.StopState, goal model.StopID) []leg {
	state, ok := reach[goal]
	if !ok || len(state.Incoming) == 0 {
		return nil
	}

	var legs []leg
	cur := goal
	curTrip := state.Incoming[0].Trip
	for steps := 0; state != nil && len(state.Incoming) > 0; steps++ {
		if steps > len(reach) {
			// Defect in the reachability map; bail rather than spin.
			return nil
		}
		in := state.Incoming[0]
		for _, cand := range state.Incoming {
			if cand.Trip == curTrip {
				in = cand
				break
			}
		}
		legs = append(legs, leg{from: in.From, to: cur, trip: in.Trip, seq: in.StopSequence})
		curTrip = in.Trip
		cur = in.From
		state = reach[cur]
	}

	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return legs
}

func pathOf(legs []leg) []model.StopID {
	if len(legs) == 0 {
		return nil
	}
	path := make([]model.StopID, 0, len(legs)+1)
	path = append(path, legs[0].from)
	for _, l := range legs {
		path = append(path, l.to)
	}
	return path
}

func (e *Evaluator) countTransfers(stats *Stats, legs []leg) {
	for i := 1; i < len(legs); i++ {
		if legs[i].trip != legs[i-1].trip {
			stats.NumberOfTransfers++
			stats.Transfers[legs[i].from]++
		}
	}
}

func (e *Evaluator) addShapeSegment(stats *Stats, l leg) {
	if l.trip == model.WalkTrip {
		id := walkSegmentID(l.from, l.to)
		if seg, ok := stats.ShapeSegments[id]; ok {
			seg.PassengerCount++
			stats.ShapeSegments[id] = seg
			return
		}
		stats.ShapeSegments[id] = ShapeSegment{
			StartStop:      l.from,
			EndStop:        l.to,
			TripID:         model.WalkTrip,
			PassengerCount: 1,
		}
		return
	}

	trip, ok := e.tt.Trips[l.trip]
	if !ok {
		return
	}
	id := rideSegmentID(trip.RouteID, l.seq, trip.DirectionID)
	if seg, ok := stats.ShapeSegments[id]; ok {
		seg.PassengerCount++
		stats.ShapeSegments[id] = seg
		return
	}

	seg := ShapeSegment{
		StartStop:      l.from,
		EndStop:        l.to,
		TripID:         l.trip,
		StopSequence:   l.seq,
		PassengerCount: 1,
	}
	seg.StartIdx, seg.EndIdx = e.shapeIndexBounds(trip, l)
	stats.ShapeSegments[id] = seg
}

// shapeIndexBounds locates the polyline span of one leg. When the
// feed carries cumulative distances on the stop times they bound the
// span directly; otherwise the nearest polyline vertex to each
// endpoint is searched, the end point starting from the start index.
func (e *Evaluator) shapeIndexBounds(trip *routing.Trip, l leg) (int32, int32) {
	shape := e.tt.Shapes[trip.ShapeID]
	k := int(l.seq)
	if len(shape) == 0 || k < 2 || k > len(trip.StopTimes) {
		return 0, 0
	}
	stStart := trip.StopTimes[k-2]
	stEnd := trip.StopTimes[k-1]

	if stStart.ShapeDistTravelled == 0 && stEnd.ShapeDistTravelled == 0 {
		startIdx := e.nearestShapeIdx(shape, l.from, 0)
		endIdx := e.nearestShapeIdx(shape, l.to, startIdx)
		return startIdx, endIdx
	}

	startIdx := lowerBoundDist(shape, stStart.ShapeDistTravelled)
	endIdx := upperBoundDist(shape, stEnd.ShapeDistTravelled)
	return startIdx, endIdx
}

func lowerBoundDist(shape []routing.ShapePoint, dist float64) int32 {
	lo, hi := 0, len(shape)
	for lo < hi {
		mid := (lo + hi) / 2
		if shape[mid].DistTravelled < dist {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(shape) {
		lo = len(shape) - 1
	}
	return int32(lo)
}

func upperBoundDist(shape []routing.ShapePoint, dist float64) int32 {
	lo, hi := 0, len(shape)
	for lo < hi {
		mid := (lo + hi) / 2
		if shape[mid].DistTravelled <= dist {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	return int32(lo - 1)
}

func (e *Evaluator) nearestShapeIdx(shape []routing.ShapePoint, stopID model.StopID, from int32) int32 {
	stop, ok := e.tt.Stops[stopID]
	if !ok {
		return from
	}

	best := from
	bestDist := math.MaxFloat64
	cosLat := math.Cos(stop.Lat * math.Pi / 180)
	for i := int(from); i < len(shape); i++ {
		dLat := shape[i].Coord.Lat - stop.Lat
		dLon := (shape[i].Coord.Lon - stop.Lon) * cosLat
		d := dLat*dLat + dLon*dLon
		if d < bestDist {
			bestDist = d
			best = int32(i)
		}
	}
	return best
}
