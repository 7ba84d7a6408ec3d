package evaluate

import (
	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/routing"
)

// Flags selecting which statistics an evaluation collects.
const (
	CollectDistStartStops uint32 = 1 << iota
	CollectDistEndStops
	CollectPaths
	CollectExtractedPaths
	CollectExtractedShapes
	CollectOptimalFirstStop
	IncludeRefs

	CollectAll = CollectDistStartStops | CollectDistEndStops | CollectPaths |
		CollectExtractedPaths | CollectExtractedShapes | CollectOptimalFirstStop | IncludeRefs
)

// SegmentID identifies one aggregated route segment within a single
// evaluation. Ride segments derive from (route, stop sequence,
// direction); walk segments from the stop pair.
type SegmentID uint64

func rideSegmentID(routeID model.RouteID, stopSequence int32, directionID int32) SegmentID {
	return SegmentID(uint64(routeID) + uint64(stopSequence)*10 + uint64(directionID))
}

func walkSegmentID(from, to model.StopID) SegmentID {
	return SegmentID(uint64(from) ^ (uint64(to) << 32))
}

// PersonPath is the best walk-ride-walk journey found for one
// resident.
type PersonPath struct {
	FirstStop        model.StopID   `json:"firstStop"`
	TimeToFirstStop  int32          `json:"timeToFirstStop"`
	SecondStop       model.StopID   `json:"secondStop"`
	TimeToSecondStop int32          `json:"timeToSecondStop"`
	TimeToGoal       int32          `json:"timeToGoal"`
	TimeAtGoal       int32          `json:"timeAtGoal"`
	TimestampAtGoal  model.Time     `json:"timestampAtGoal"`
	ExtractedPath    []model.StopID `json:"extractedPath,omitempty"`
}

// ShapeSegment is one traversed stop-pair leg with the passengers
// riding it and the index range of its map polyline.
type ShapeSegment struct {
	StartStop      model.StopID `json:"startStop"`
	EndStop        model.StopID `json:"endStop"`
	TripID         model.TripID `json:"tripId"`
	StartIdx       int32        `json:"startIdx"`
	EndIdx         int32        `json:"endIdx"`
	StopSequence   int32        `json:"stopSequence"`
	PassengerCount int32        `json:"passengerCount"`
}

// Stats is the result of one accessibility evaluation.
type Stats struct {
	PersonsWithinRange         uint64 `json:"personsWithinRange"`
	ExcludedWithinMinimumRange uint64 `json:"excludedWithinMinimumRange"`
	PersonsCanGoWithBus        uint64 `json:"personsCanGoWithBus"`
	UnreachableWorks           uint64 `json:"unreachableWorks"`
	UniqueSpots                uint64 `json:"uniqueSpots"`
	HasThisAsOptimal           uint64 `json:"hasThisAsOptimal"`
	NumberOfTransfers          uint64 `json:"numberOfTransfers"`

	DistNumberOfStartStops map[uint64]int       `json:"distNumberOfStartStops,omitempty"`
	DistNumberOfEndStops   map[uint64]int       `json:"distNumberOfEndStops,omitempty"`
	OptimalFirstStop       map[model.StopID]int `json:"optimalFirstStop,omitempty"`
	Transfers              map[model.StopID]int `json:"transfers,omitempty"`

	AllPaths      []PersonPath               `json:"allPaths,omitempty"`
	ShapeSegments map[SegmentID]ShapeSegment `json:"shapeSegments,omitempty"`

	InterestingStop model.StopID `json:"interestingStop"`

	// Populated only when IncludeRefs is requested.
	Timetable *routing.Timetable `json:"-"`
	Options   *Options           `json:"-"`
}

func newStats(opts Options) Stats {
	return Stats{
		DistNumberOfStartStops: map[uint64]int{},
		DistNumberOfEndStops:   map[uint64]int{},
		OptimalFirstStop:       map[model.StopID]int{},
		Transfers:              map[model.StopID]int{},
		ShapeSegments:          map[SegmentID]ShapeSegment{},
		InterestingStop:        opts.InterestingStop,
	}
}
