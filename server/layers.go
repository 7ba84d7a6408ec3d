package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kollektivlab/access/evaluate"
	"github.com/kollektivlab/access/model"
)

type lineGeometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type lineFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   lineGeometry           `json:"geometry"`
}

type lineCollection struct {
	Type     string        `json:"type"`
	Features []lineFeature `json:"features"`
}

func (s *Server) departures(c *fiber.Ctx) error {
	stopID, err := s.stopParam(c)
	if err != nil {
		return badRequest(c, "invalid stop id: %v", err)
	}
	if _, ok := s.tt.Stops[stopID]; !ok {
		return notFound(c, "unknown stop %d", stopID)
	}

	opts := s.routingOptions(c)
	limit := c.QueryInt("limit", -1)
	departures := s.tt.Departures(stopID, opts.Date, opts.StartTime, opts.SearchTime, limit)
	return c.JSON(departures)
}

// evaluateLayer runs an evaluation and renders its aggregated route
// segments as a GeoJSON layer: one LineString per segment, carrying
// the passenger load and, when registered, the line's colors.
func (s *Server) evaluateLayer(c *fiber.Ctx) error {
	stopID, err := s.stopParam(c)
	if err != nil {
		return badRequest(c, "invalid stop id: %v", err)
	}
	if _, ok := s.tt.Stops[stopID]; !ok {
		return notFound(c, "unknown stop %d", stopID)
	}

	opts := evaluate.Options{
		InterestingStop:  stopID,
		WalkSpeed:        c.QueryFloat("walkSpeed", 1.4),
		SearchRange:      int32(c.QueryInt("searchRange", 1000)),
		MoveableDistance: int32(c.QueryInt("moveableDistance", 1000)),
		MinimumRange:     int32(c.QueryInt("minimumRange", 0)),
		StatsToCollect:   evaluate.CollectExtractedShapes,
		RoutingOptions:   s.routingOptions(c),
	}
	if opts.WalkSpeed <= 0 {
		return badRequest(c, "walkSpeed must be positive")
	}

	stats := s.evaluator.Evaluate(stopID, opts)

	collection := lineCollection{Type: "FeatureCollection"}
	for _, seg := range stats.ShapeSegments {
		coords := s.segmentCoords(seg)
		if len(coords) < 2 {
			continue
		}

		properties := map[string]interface{}{
			"passengerCount": seg.PassengerCount,
			"tripId":         seg.TripID,
			"walk":           seg.TripID == model.WalkTrip,
		}
		if s.lines != nil && seg.TripID != model.WalkTrip {
			if trip, ok := s.tt.Trips[seg.TripID]; ok {
				if line, ok := s.lines.Colors(trip.RouteID); ok {
					properties["fgColor"] = line.FgColor
					properties["bgColor"] = line.BgColor
				}
			}
		}

		collection.Features = append(collection.Features, lineFeature{
			Type:       "Feature",
			Properties: properties,
			Geometry:   lineGeometry{Type: "LineString", Coordinates: coords},
		})
	}

	if err := c.JSON(collection); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return nil
}

// segmentCoords resolves a segment to map coordinates: the polyline
// span for ride segments, a straight line between the stops for walk
// segments or when the trip carries no shape.
func (s *Server) segmentCoords(seg evaluate.ShapeSegment) [][2]float64 {
	if seg.TripID != model.WalkTrip {
		if trip, ok := s.tt.Trips[seg.TripID]; ok {
			shape := s.tt.Shapes[trip.ShapeID]
			if len(shape) > 0 && seg.StartIdx < seg.EndIdx && int(seg.EndIdx) < len(shape) {
				coords := make([][2]float64, 0, seg.EndIdx-seg.StartIdx+1)
				for i := seg.StartIdx; i <= seg.EndIdx; i++ {
					coords = append(coords, [2]float64{shape[i].Coord.Lon, shape[i].Coord.Lat})
				}
				return coords
			}
		}
	}

	from, okFrom := s.tt.Stops[seg.StartStop]
	to, okTo := s.tt.Stops[seg.EndStop]
	if !okFrom || !okTo {
		return nil
	}
	return [][2]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}}
}
