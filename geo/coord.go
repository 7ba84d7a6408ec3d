// Package geo holds the coordinate types shared by the timetable,
// the resident table and the spatial indexes: geodetic lat/lon
// coordinates and planar meter coordinates under the fixed national
// projection.
package geo

import "math"

// MeterCoord is a planar coordinate in whole meters. X grows north,
// Y grows east.
type MeterCoord struct {
	X, Y int32
}

// DMSCoord is a geodetic WGS84 coordinate in decimal degrees.
type DMSCoord struct {
	Lat, Lon float64
}

// Less orders coordinates lexicographically.
func (c MeterCoord) Less(o MeterCoord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// DistanceTo returns the Euclidean distance to o in meters.
func (c MeterCoord) DistanceTo(o MeterCoord) float32 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// DistanceToLEQ reports whether the Euclidean distance to o is at
// most d meters. Computed without a square root; the squares are
// taken in 64 bits so regional-scale coordinates cannot overflow.
func (c MeterCoord) DistanceToLEQ(o MeterCoord, d int32) bool {
	dx := int64(c.X) - int64(o.X)
	dy := int64(c.Y) - int64(o.Y)
	return dx*dx+dy*dy <= int64(d)*int64(d)
}

// ToDMS projects the coordinate back to geodetic degrees.
func (c MeterCoord) ToDMS() DMSCoord {
	lat, lon := sweref99tm.gridToGeodetic(float64(c.X), float64(c.Y))
	return DMSCoord{Lat: lat, Lon: lon}
}

// Less orders coordinates by (lat, lon).
func (c DMSCoord) Less(o DMSCoord) bool {
	if c.Lat != o.Lat {
		return c.Lat < o.Lat
	}
	return c.Lon < o.Lon
}

// ToMeter projects the coordinate onto the planar grid, truncating
// to whole meters.
func (c DMSCoord) ToMeter() MeterCoord {
	n, e := sweref99tm.geodeticToGrid(c.Lat, c.Lon)
	return MeterCoord{X: int32(n), Y: int32(e)}
}
