// Package people holds the resident table and its spatial index.
// Home coordinates sit on the national 100 m statistics grid, offset
// 50 m in both axes, which makes a bucket-per-cell index exact:
// every resident in a cell shares the cell center coordinate.
package people

import (
	"github.com/kollektivlab/access/geo"
	"github.com/kollektivlab/access/model"
)

// Grid geometry of the resident dataset.
const (
	GridStep   int32 = 100
	GridOffset int32 = 50
)

// Person is one commuter with a registered home and workplace.
type Person struct {
	IsFemale         bool
	WorkCounty       model.County
	WorkMunicipality model.Municipality
	WorkCoord        geo.MeterCoord
	HomeCounty       model.County
	HomeMunicipality model.Municipality
	HomeCoord        geo.MeterCoord
}

// DistanceToWork is the Euclidean home-to-work distance in meters.
func (p Person) DistanceToWork() float32 {
	return p.HomeCoord.DistanceTo(p.WorkCoord)
}

type People struct {
	all        []Person
	byHomeCell map[geo.MeterCoord][]Person
}

// New builds the resident table and its home-cell index from raw
// records. The raw gender field is 1/2; counties and municipalities
// are carried through as-is.
func New(raw []model.RawPerson) *People {
	p := &People{
		all:        make([]Person, 0, len(raw)),
		byHomeCell: map[geo.MeterCoord][]Person{},
	}
	for _, r := range raw {
		person := Person{
			IsFemale:         r.Kon == 2,
			WorkCounty:       model.County(r.WorkCounty),
			WorkMunicipality: model.Municipality(r.WorkKommun),
			WorkCoord:        geo.MeterCoord{X: r.WorkX, Y: r.WorkY},
			HomeCounty:       model.County(r.HomeCounty),
			HomeMunicipality: model.Municipality(r.HomeKommun),
			HomeCoord:        geo.MeterCoord{X: r.HomeX, Y: r.HomeY},
		}
		p.all = append(p.all, person)
		p.byHomeCell[person.HomeCoord] = append(p.byHomeCell[person.HomeCoord], person)
	}
	return p
}

// Len returns the number of residents.
func (p *People) Len() int { return len(p.all) }

// All returns the full resident slice. Callers must not mutate it.
func (p *People) All() []Person { return p.all }

func floorToStep(v, step, offset int32) int32 {
	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}
	return q*step + offset
}

// SquareCells enumerates every grid cell center congruent to offset
// mod step inside the axis-aligned box origin ± (dx, dy). The lower
// corner is rounded down to the nearest step before the offset is
// applied, so the enumeration never starts above the box.
func SquareCells(origin geo.MeterCoord, dx, dy, step, offset int32) []geo.MeterCoord {
	var cells []geo.MeterCoord
	for x := floorToStep(origin.X-dx, step, offset); x <= origin.X+dx; x += step {
		for y := floorToStep(origin.Y-dy, step, offset); y <= origin.Y+dy; y += step {
			cells = append(cells, geo.MeterCoord{X: x, Y: y})
		}
	}
	return cells
}

// CircleCells is SquareCells constrained to cell centers within r
// meters of origin.
func CircleCells(origin geo.MeterCoord, r, step, offset int32) []geo.MeterCoord {
	square := SquareCells(origin, r, r, step, offset)
	cells := square[:0]
	for _, c := range square {
		if c.DistanceToLEQ(origin, r) {
			cells = append(cells, c)
		}
	}
	return cells
}

// PersonsInCircle returns every resident whose home lies within r
// meters of origin.
func (p *People) PersonsInCircle(origin geo.MeterCoord, r int32) []Person {
	var persons []Person
	for _, c := range CircleCells(origin, r, GridStep, GridOffset) {
		persons = append(persons, p.byHomeCell[c]...)
	}
	return persons
}

// NaivePersonsInCircle is the linear-scan reference for
// PersonsInCircle, kept for equivalence testing.
func (p *People) NaivePersonsInCircle(origin geo.MeterCoord, r int32) []Person {
	var persons []Person
	for _, person := range p.all {
		if person.HomeCoord.DistanceToLEQ(origin, r) {
			persons = append(persons, person)
		}
	}
	return persons
}

// PopulatedCellsInCircle returns the distinct home cells within r
// meters of origin that at least one resident lives in.
func (p *People) PopulatedCellsInCircle(origin geo.MeterCoord, r int32) []geo.MeterCoord {
	var cells []geo.MeterCoord
	for _, c := range CircleCells(origin, r, GridStep, GridOffset) {
		if len(p.byHomeCell[c]) > 0 {
			cells = append(cells, c)
		}
	}
	return cells
}
