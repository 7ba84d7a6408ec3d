package people

import "sort"

// DistanceBucket is one bar of the commute-distance histogram.
type DistanceBucket struct {
	Name  string `json:"name"`
	Count int    `json:"distance"`
}

// Report summarizes commute distances of a group of residents.
type Report struct {
	Count          int              `json:"nrPeople"`
	MedianDistance uint32           `json:"medianDistance"`
	Buckets        []DistanceBucket `json:"distanceStats"`
}

var bucketBounds = []struct {
	name  string
	limit float32
}{
	{"< 1 km", 1000},
	{"1-5 km", 5000},
	{"5-10 km", 10000},
	{"10-50 km", 50000},
}

// DistanceReport sorts persons by home-to-work distance and buckets
// them into the standard histogram. The median is the middle element
// of the sorted slice.
func DistanceReport(persons []Person) Report {
	report := Report{Count: len(persons)}
	if len(persons) == 0 {
		for _, b := range bucketBounds {
			report.Buckets = append(report.Buckets, DistanceBucket{Name: b.name})
		}
		report.Buckets = append(report.Buckets, DistanceBucket{Name: "> 50 km"})
		return report
	}

	sorted := append([]Person{}, persons...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DistanceToWork() < sorted[j].DistanceToWork()
	})
	report.MedianDistance = uint32(sorted[len(sorted)/2].DistanceToWork())

	prev := 0
	for _, b := range bucketBounds {
		limit := b.limit
		bound := sort.Search(len(sorted), func(i int) bool {
			return sorted[i].DistanceToWork() > limit
		})
		report.Buckets = append(report.Buckets, DistanceBucket{Name: b.name, Count: bound - prev})
		prev = bound
	}
	report.Buckets = append(report.Buckets, DistanceBucket{Name: "> 50 km", Count: len(sorted) - prev})
	return report
}
