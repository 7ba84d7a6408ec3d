package people_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/geo"
	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/people"
	"github.com/kollektivlab/access/testutil"
)

func TestSquareCells(t *testing.T) {
	cells := people.SquareCells(geo.MeterCoord{X: 0, Y: 0}, 100, 100, 100, 50)

	// The lower corner -100 rounds down to -100, so the first cell
	// center in each axis is -50.
	assert.ElementsMatch(t, []geo.MeterCoord{
		{X: -50, Y: -50}, {X: -50, Y: 50},
		{X: 50, Y: -50}, {X: 50, Y: 50},
	}, cells)
}

func TestSquareCellsNegativeOrigin(t *testing.T) {
	cells := people.SquareCells(geo.MeterCoord{X: -200, Y: -200}, 100, 100, 100, 50)
	assert.ElementsMatch(t, []geo.MeterCoord{
		{X: -250, Y: -250}, {X: -250, Y: -150},
		{X: -150, Y: -250}, {X: -150, Y: -150},
	}, cells)
}

func TestSquareCellsDeterministic(t *testing.T) {
	origin := geo.MeterCoord{X: 412345, Y: 209876}
	a := people.SquareCells(origin, 300, 300, 100, 50)
	b := people.SquareCells(origin, 300, 300, 100, 50)
	assert.Equal(t, a, b)
	require.NotEmpty(t, a)
	for _, c := range a {
		assert.Equal(t, int32(50), ((c.X%100)+100)%100)
		assert.Equal(t, int32(50), ((c.Y%100)+100)%100)
	}
}

func TestCircleCells(t *testing.T) {
	origin := geo.MeterCoord{X: 0, Y: 0}
	cells := people.CircleCells(origin, 150, 100, 50)

	for _, c := range cells {
		assert.True(t, c.DistanceToLEQ(origin, 150))
	}
	// The axis-near cells qualify; the corner cells at (±150, ±150)
	// lie 212 m out and do not.
	assert.Contains(t, cells, geo.MeterCoord{X: 50, Y: 50})
	assert.Contains(t, cells, geo.MeterCoord{X: -50, Y: -50})
	assert.NotContains(t, cells, geo.MeterCoord{X: 150, Y: 150})
}

func TestPersonsInCircle(t *testing.T) {
	ppl := testutil.BuildPeople(
		testutil.Resident(50, 50, 10050, 10050),
		testutil.Resident(50, 150, 10050, 10050),
		testutil.Resident(150, 50, 10050, 10050),
		testutil.Resident(150, 150, 10050, 10050),
		testutil.Resident(-50, 50, 10050, 10050),
	)

	found := ppl.PersonsInCircle(geo.MeterCoord{X: 0, Y: 0}, 150)

	homes := make([]geo.MeterCoord, 0, len(found))
	for _, p := range found {
		homes = append(homes, p.HomeCoord)
	}
	// (50,150) and (150,50) lie 158 m from the origin, (150,150)
	// 212 m; only the two near cells are inside 150 m.
	assert.ElementsMatch(t, []geo.MeterCoord{
		{X: 50, Y: 50},
		{X: -50, Y: 50},
	}, homes)
}

// The grid index must agree with a scan of the full table for any
// query circle.
func TestPersonsInCircleMatchesNaive(t *testing.T) {
	raw := []model.RawPerson{}
	for x := int32(-1050); x <= 1050; x += 100 {
		for y := int32(-450); y <= 1250; y += 200 {
			raw = append(raw, testutil.Resident(x, y, x+5000, y+5000))
		}
	}
	ppl := people.New(raw)

	queries := []struct {
		origin geo.MeterCoord
		r      int32
	}{
		{geo.MeterCoord{X: 0, Y: 0}, 0},
		{geo.MeterCoord{X: 0, Y: 0}, 100},
		{geo.MeterCoord{X: 50, Y: 50}, 99},
		{geo.MeterCoord{X: 50, Y: 50}, 100},
		{geo.MeterCoord{X: -317, Y: 211}, 333},
		{geo.MeterCoord{X: 12, Y: -800}, 777},
		{geo.MeterCoord{X: 1050, Y: 1250}, 2500},
	}

	for _, q := range queries {
		got := ppl.PersonsInCircle(q.origin, q.r)
		want := ppl.NaivePersonsInCircle(q.origin, q.r)

		gotHomes := make([]geo.MeterCoord, 0, len(got))
		for _, p := range got {
			gotHomes = append(gotHomes, p.HomeCoord)
		}
		wantHomes := make([]geo.MeterCoord, 0, len(want))
		for _, p := range want {
			wantHomes = append(wantHomes, p.HomeCoord)
		}
		assert.ElementsMatch(t, wantHomes, gotHomes, "origin %v r %d", q.origin, q.r)
	}
}

func TestPopulatedCellsInCircle(t *testing.T) {
	ppl := testutil.BuildPeople(
		testutil.Resident(50, 50, 10050, 10050),
		testutil.Resident(50, 50, 20050, 20050),
		testutil.Resident(250, 50, 10050, 10050),
	)

	cells := ppl.PopulatedCellsInCircle(geo.MeterCoord{X: 0, Y: 0}, 120)
	assert.ElementsMatch(t, []geo.MeterCoord{{X: 50, Y: 50}}, cells)

	cells = ppl.PopulatedCellsInCircle(geo.MeterCoord{X: 0, Y: 0}, 300)
	assert.ElementsMatch(t, []geo.MeterCoord{
		{X: 50, Y: 50},
		{X: 250, Y: 50},
	}, cells)
}

func TestNewIndexesByHomeCell(t *testing.T) {
	ppl := people.New([]model.RawPerson{
		{Kon: 2, HomeCounty: 14, HomeKommun: 1480, HomeX: 50, HomeY: 50, WorkCounty: 14, WorkKommun: 1480, WorkX: 1050, WorkY: 50},
	})
	require.Equal(t, 1, ppl.Len())
	p := ppl.All()[0]
	assert.True(t, p.IsFemale)
	assert.Equal(t, model.CountyVastraGotaland, p.HomeCounty)
	assert.InDelta(t, 1000, float64(p.DistanceToWork()), 0.001)
}
