package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceTo(t *testing.T) {
	a := MeterCoord{X: 0, Y: 0}
	b := MeterCoord{X: 3000, Y: 4000}
	assert.InDelta(t, 5000, float64(a.DistanceTo(b)), 0.001)
	assert.InDelta(t, 5000, float64(b.DistanceTo(a)), 0.001)
	assert.Equal(t, float32(0), a.DistanceTo(a))
}

func TestDistanceToLEQ(t *testing.T) {
	a := MeterCoord{X: 0, Y: 0}
	b := MeterCoord{X: 3000, Y: 4000}

	assert.True(t, a.DistanceToLEQ(b, 5000))
	assert.False(t, a.DistanceToLEQ(b, 4999))
	assert.True(t, a.DistanceToLEQ(b, 5001))

	// Symmetric.
	assert.True(t, b.DistanceToLEQ(a, 5000))
	assert.False(t, b.DistanceToLEQ(a, 4999))
}

// Regional coordinates square beyond 32 bits; the predicate must not
// overflow.
func TestDistanceToLEQLargeCoords(t *testing.T) {
	a := MeterCoord{X: 7600000, Y: 900000}
	b := MeterCoord{X: 6100000, Y: 200000}
	assert.True(t, a.DistanceToLEQ(b, 2000000))
	assert.False(t, a.DistanceToLEQ(b, 1500000))
}

func TestMeterCoordLess(t *testing.T) {
	assert.True(t, MeterCoord{1, 5}.Less(MeterCoord{2, 0}))
	assert.True(t, MeterCoord{1, 5}.Less(MeterCoord{1, 6}))
	assert.False(t, MeterCoord{1, 5}.Less(MeterCoord{1, 5}))
	assert.False(t, MeterCoord{2, 0}.Less(MeterCoord{1, 5}))
}

func TestDMSCoordLess(t *testing.T) {
	assert.True(t, DMSCoord{57.0, 12.0}.Less(DMSCoord{57.1, 11.0}))
	assert.True(t, DMSCoord{57.0, 11.0}.Less(DMSCoord{57.0, 12.0}))
	assert.False(t, DMSCoord{57.0, 12.0}.Less(DMSCoord{57.0, 12.0}))
}
