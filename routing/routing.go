package routing

import (
	"container/heap"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/kollektivlab/access/model"
)

// Options controls one shortest-path search.
type Options struct {
	// StartTime is the earliest boardable departure at the origin,
	// in seconds since midnight.
	StartTime model.Time
	// Date selects which services run.
	Date model.Date
	// SearchTime is the departure window considered at every stop:
	// after arriving, only departures within [earliest, earliest +
	// SearchTime) are boardable.
	SearchTime int32
	// MinTransferTime replaces each stop's own minimum transfer
	// time when OverrideMinTransferTime is set.
	MinTransferTime         int32
	OverrideMinTransferTime bool
}

// IncomingEdge records how a search reached a stop. Trip is
// model.WalkTrip for walk legs; StopSequence is the 1-based sequence
// of the arrival stop-time on that trip.
type IncomingEdge struct {
	From         model.StopID
	Trip         model.TripID
	StopSequence int32
}

// StopState is the per-stop record of one search. Incoming holds the
// best predecessor first, followed by alternatives that arrived
// within the transfer margin; path reconstruction may prefer an
// alternative to stay on the same trip.
type StopState struct {
	TravelTime      int32
	InitialWaitTime int32
	Incoming        []IncomingEdge

	visited bool
	revisit bool
}

func (s *StopState) hasIncomingTrip(trip model.TripID) bool {
	for _, in := range s.Incoming {
		if in.Trip == trip {
			return true
		}
	}
	return false
}

type edge struct {
	to       model.StopID
	cost     int32
	trip     model.TripID
	seq      int32
	depart   model.Time
	boarding bool
}

type queueItem struct {
	stop       model.StopID
	travelTime int32
}

type stopQueue []queueItem

func (q stopQueue) Len() int            { return len(q) }
func (q stopQueue) Less(i, j int) bool  { return q[i].travelTime < q[j].travelTime }
func (q stopQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *stopQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *stopQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPaths runs a label-setting search from origin and returns
// the earliest arrival at every reachable stop area. Unreachable
// stops are absent from the result. An unknown origin yields an
// empty map.
func (tt *Timetable) ShortestPaths(origin model.StopID, opts Options) map[model.StopID]*StopState {
	state := map[model.StopID]*StopState{}
	if _, ok := tt.Stops[origin]; !ok {
		return state
	}

	state[origin] = &StopState{}
	queue := &stopQueue{{stop: origin}}
	heap.Init(queue)

	for queue.Len() > 0 {
		item := heap.Pop(queue).(queueItem)
		cur := state[item.stop]
		if cur.visited && !cur.revisit {
			continue
		}
		cur.visited = true
		cur.revisit = false

		isOrigin := item.stop == origin
		for _, e := range tt.outgoingEdges(item.stop, cur, isOrigin, opts) {
			newTime := cur.TravelTime + e.cost

			v, ok := state[e.to]
			if !ok {
				v = &StopState{TravelTime: math.MaxInt32}
				state[e.to] = v
			}

			if newTime < v.TravelTime {
				v.TravelTime = newTime
				v.Incoming = append(
					[]IncomingEdge{{From: item.stop, Trip: e.trip, StopSequence: e.seq}},
					v.Incoming...)
				if e.boarding && isOrigin {
					v.InitialWaitTime = int32(e.depart) - int32(opts.StartTime)
				} else {
					v.InitialWaitTime = cur.InitialWaitTime
				}
				heap.Push(queue, queueItem{stop: e.to, travelTime: newTime})
			} else if newTime <= v.TravelTime+tt.effectiveMinTransferTime(e.to, opts) {
				// An alternative arriving within the transfer
				// margin; kept so reconstruction can pick the
				// journey with fewer transfers.
				if v.visited {
					if !v.hasIncomingTrip(e.trip) {
						v.Incoming = append(v.Incoming, IncomingEdge{
							From: item.stop, Trip: e.trip, StopSequence: e.seq,
						})
						v.revisit = true
						heap.Push(queue, queueItem{stop: e.to, travelTime: v.TravelTime})
					}
				} else {
					v.Incoming = append(v.Incoming, IncomingEdge{
						From: item.stop, Trip: e.trip, StopSequence: e.seq,
					})
				}
			}
		}
	}

	state[origin].Incoming = nil
	return state
}

func (tt *Timetable) effectiveMinTransferTime(stopID model.StopID, opts Options) int32 {
	if opts.OverrideMinTransferTime {
		return opts.MinTransferTime
	}
	if stop, ok := tt.Stops[stopID]; ok {
		return stop.MinTransferTime
	}
	return DefaultMinTransferTime
}

func (tt *Timetable) outgoingEdges(stopID model.StopID, cur *StopState, isOrigin bool, opts Options) []edge {
	stop, ok := tt.Stops[stopID]
	if !ok {
		return nil
	}

	var edges []edge

	// Walk transfers are pre-stored on the stop.
	for _, w := range stop.TransfersWalk {
		edges = append(edges, edge{to: w.To, cost: w.Cost, trip: model.WalkTrip})
	}

	now := int32(opts.StartTime) + cur.TravelTime

	for _, in := range cur.Incoming {
		if in.Trip == model.WalkTrip {
			continue
		}
		trip, ok := tt.Trips[in.Trip]
		if !ok {
			log.Warn().Uint64("trip", uint64(in.Trip)).Msg("incoming edge references unknown trip")
			continue
		}

		// Stay on the arriving trip to its next stop.
		if idx := int(in.StopSequence); idx < len(trip.StopTimes) {
			next := trip.StopTimes[idx]
			edges = append(edges, edge{
				to:   next.StopID,
				cost: int32(next.Arrival) - now,
				trip: in.Trip,
				seq:  next.StopSequence,
			})
		}

		// Stay-seated transfers onto connecting trips.
		for _, toTrip := range stop.TransfersStay[in.Trip] {
			if e, ok := tt.stayTransferEdge(stopID, toTrip, now); ok {
				edges = append(edges, e)
			}
		}
	}

	edges = append(edges, tt.boardingEdges(stopID, cur, isOrigin, opts)...)
	return edges
}

// stayTransferEdge finds where a stay-seated connection onto toTrip
// continues from this stop area: the first call at the area not
// departed yet, skipping consecutive duplicate entries for other
// platforms of the same area.
func (tt *Timetable) stayTransferEdge(stopID model.StopID, toTrip model.TripID, now int32) (edge, bool) {
	trip, ok := tt.Trips[toTrip]
	if !ok {
		log.Warn().Uint64("trip", uint64(toTrip)).Msg("stay transfer references unknown trip")
		return edge{}, false
	}

	j := -1
	for i, st := range trip.StopTimes {
		if st.StopID == stopID && int32(st.Departure) >= now {
			j = i
			break
		}
	}
	if j < 0 {
		return edge{}, false
	}
	for j+1 < len(trip.StopTimes) && trip.StopTimes[j+1].StopID == stopID {
		j++
	}
	if j+1 >= len(trip.StopTimes) {
		return edge{}, false
	}

	next := trip.StopTimes[j+1]
	return edge{
		to:   next.StopID,
		cost: int32(next.Arrival) - now,
		trip: toTrip,
		seq:  next.StopSequence,
	}, true
}

func (tt *Timetable) boardingEdges(stopID model.StopID, cur *StopState, isOrigin bool, opts Options) []edge {
	earliest := int32(opts.StartTime)
	if !isOrigin {
		earliest += cur.TravelTime + tt.effectiveMinTransferTime(stopID, opts)
	}

	departures := tt.StopTimesByStop[stopID]
	i := sort.Search(len(departures), func(i int) bool {
		return int32(departures[i].Departure) >= earliest
	})

	var edges []edge
	seenDirections := map[model.ShapeID]bool{}
	for ; i < len(departures) && int32(departures[i].Departure) < earliest+opts.SearchTime; i++ {
		st := departures[i]
		trip, ok := tt.Trips[st.TripID]
		if !ok {
			log.Warn().Uint64("trip", uint64(st.TripID)).Msg("departure references unknown trip")
			continue
		}

		if !tt.serviceActiveOn(trip.ServiceID, opts.Date) {
			continue
		}

		// Max one departure per direction, keyed by shape.
		if seenDirections[trip.ShapeID] {
			continue
		}
		seenDirections[trip.ShapeID] = true

		idx := int(st.StopSequence)
		if idx >= len(trip.StopTimes) {
			// Final stop of the trip.
			continue
		}
		next := trip.StopTimes[idx]

		// Boarding something that goes straight back, or to
		// another platform of this same area, is never useful.
		if len(cur.Incoming) > 0 && next.StopID == cur.Incoming[0].From {
			continue
		}
		if next.StopID == stopID {
			continue
		}

		edges = append(edges, edge{
			to:       next.StopID,
			cost:     int32(next.Arrival) - int32(opts.StartTime) - cur.TravelTime,
			trip:     st.TripID,
			seq:      next.StopSequence,
			depart:   st.Departure,
			boarding: true,
		})
	}

	return edges
}
