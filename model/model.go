package model

import (
	"fmt"
	"time"
)

// Holds all external facing types and constants.
//
// Identifiers in the regional feed are numeric. A stop id encodes
// structure: the 13th decimal digit is 1 for a stop area and 2 for a
// stop point (platform), and the last three digits number the
// platform within its area.

type (
	AgencyID  uint64
	RouteID   uint64
	ShapeID   uint64
	TripID    uint64
	StopID    uint64
	ServiceID int32
)

// WalkTrip is the reserved trip id used for walk legs. No real trip
// may use this value.
const WalkTrip TripID = 0

// IsStopPoint reports whether s identifies a stop point (platform)
// rather than a stop area.
func (s StopID) IsStopPoint() bool {
	return s/1_000_000_000_000%10 == 2
}

// Area folds a stop-point id onto its stop area. Stop-area ids fold
// to themselves.
func (s StopID) Area() StopID {
	if !s.IsStopPoint() {
		return s
	}
	return s - s%1000 - 1_000_000_000_000
}

type LocationType int8

const (
	LocationTypeStopPoint LocationType = iota
	LocationTypeStopArea
	LocationTypeEntranceExit
	LocationTypeGenericNode
	LocationTypeBoardingArea
)

type TransferType int8

const (
	// TransferRecommended marks a recommended transfer point.
	TransferRecommended TransferType = 0
	// TransferStaySeated is an in-place trip-to-trip connection.
	TransferStaySeated TransferType = 1
	// TransferWalk requires moving between stop areas.
	TransferWalk TransferType = 2
)

// Time is seconds since local midnight. Values above 86400 denote
// after-midnight arrivals belonging to the previous service day.
type Time int32

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t/3600, t/60%60, t%60)
}

// Date is an integer on the form yyyymmdd.
type Date int32

func (d Date) Year() int  { return int(d) / 10000 }
func (d Date) Month() int { return int(d) / 100 % 100 }
func (d Date) Day() int   { return int(d) % 100 }

func (d Date) Time() time.Time {
	return time.Date(d.Year(), time.Month(d.Month()), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of week, with time.Monday..time.Sunday
// matching the calendar.txt columns.
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Next returns the following calendar date.
func (d Date) Next() Date {
	t := d.Time().AddDate(0, 0, 1)
	return Date(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

type Agency struct {
	ID       AgencyID
	Name     string
	URL      string
	Timezone string
	Lang     string
	FareURL  string
}

type Stop struct {
	ID           StopID
	Name         string
	Lat          float64
	Lon          float64
	LocationType LocationType
}

type Route struct {
	ID        RouteID
	AgencyID  AgencyID
	ShortName string
	LongName  string
	Type      int
	Desc      string
}

type Trip struct {
	RouteID     RouteID
	ServiceID   ServiceID
	ID          TripID
	Headsign    string
	DirectionID int32
	ShapeID     ShapeID
}

type StopTime struct {
	TripID             TripID
	Arrival            Time
	Departure          Time
	StopID             StopID
	StopSequence       int32
	Headsign           string
	PickupType         int32
	DropOffType        int32
	ShapeDistTravelled float64
	Timepoint          bool
}

type Calendar struct {
	ServiceID ServiceID
	Weekdays  [7]bool // indexed by time.Weekday
	StartDate Date
	EndDate   Date
}

type CalendarDate struct {
	ServiceID ServiceID
	Date      Date
	// ExceptionType per GTFS: 1 adds the date, 2 removes it.
	ExceptionType int8
}

type Transfer struct {
	FromStopID      StopID
	ToStopID        StopID
	Type            TransferType
	MinTransferTime int32
	FromTripID      TripID
	ToTripID        TripID
}

type ShapePoint struct {
	ShapeID       ShapeID
	Lat           float64
	Lon           float64
	Sequence      int32
	DistTravelled float64
}

type FeedInfo struct {
	ID            string
	PublisherName string
	PublisherURL  string
	Lang          string
	Version       string
}

// County codes of the national statistics agency.
type County int32

const (
	CountyStockholm      County = 1
	CountyUppsala        County = 3
	CountySodermanland   County = 4
	CountyOstergotland   County = 5
	CountyJonkoping      County = 6
	CountyKronoberg      County = 7
	CountyKalmar         County = 8
	CountyGotland        County = 9
	CountyBlekinge       County = 10
	CountySkane          County = 12
	CountyHalland        County = 13
	CountyVastraGotaland County = 14
	CountyVarmland       County = 17
	CountyOrebro         County = 18
	CountyVastmanland    County = 19
	CountyDalarna        County = 20
	CountyGavleborg      County = 21
	CountyVasternorrland County = 22
	CountyJamtland       County = 23
	CountyVasterbotten   County = 24
	CountyNorrbotten     County = 25
)

type Municipality int16

// RawPerson is one row of the resident dataset: a commuter with a
// registered workplace and home, both on the 100 m statistics grid.
type RawPerson struct {
	Kon        int32
	WorkCounty int32
	WorkKommun int32
	WorkX      int32
	WorkY      int32
	HomeCounty int32
	HomeKommun int32
	HomeX      int32
	HomeY      int32
}
