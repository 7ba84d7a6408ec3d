package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kollektivlab/access/evaluate"
	"github.com/kollektivlab/access/geo"
	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/people"
	"github.com/kollektivlab/access/routing"
)

type geoJSONGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string                 `json:"type"`
	ID         model.StopID           `json:"id"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   geoJSONGeometry        `json:"geometry"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

func stopFeature(stop *routing.Stop, properties map[string]interface{}) geoJSONFeature {
	return geoJSONFeature{
		Type:       "Feature",
		ID:         stop.ID,
		Properties: properties,
		Geometry: geoJSONGeometry{
			Type:        "Point",
			Coordinates: [2]float64{stop.Lon, stop.Lat},
		},
	}
}

func (s *Server) stopParam(c *fiber.Ctx) (model.StopID, error) {
	raw, err := strconv.ParseUint(c.Params("stopId"), 10, 64)
	if err != nil {
		return 0, err
	}
	return model.StopID(raw), nil
}

func (s *Server) stops(c *fiber.Ctx) error {
	collection := geoJSONCollection{Type: "FeatureCollection"}
	for _, stop := range s.tt.Stops {
		collection.Features = append(collection.Features, stopFeature(stop, map[string]interface{}{
			"name": stop.Name,
		}))
	}
	// c.JSON sets application/json; the GeoJSON type goes on after it.
	if err := c.JSON(collection); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return nil
}

func (s *Server) graphFrom(c *fiber.Ctx) error {
	stopID, err := s.stopParam(c)
	if err != nil {
		return badRequest(c, "invalid stop id: %v", err)
	}
	if _, ok := s.tt.Stops[stopID]; !ok {
		return notFound(c, "unknown stop %d", stopID)
	}

	blob, err := s.cache.Reachability(s.tt, stopID, s.routingOptions(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(blob)
}

func (s *Server) travelTimeLayer(c *fiber.Ctx) error {
	stopID, err := s.stopParam(c)
	if err != nil {
		return badRequest(c, "invalid stop id: %v", err)
	}
	if _, ok := s.tt.Stops[stopID]; !ok {
		return notFound(c, "unknown stop %d", stopID)
	}

	reach := s.tt.ShortestPaths(stopID, s.routingOptions(c))

	collection := geoJSONCollection{Type: "FeatureCollection"}
	for reachedID, state := range reach {
		stop, ok := s.tt.Stops[reachedID]
		if !ok {
			continue
		}
		properties := map[string]interface{}{
			"name":       stop.Name,
			"travelTime": routing.PrettyTravelTime(state.TravelTime),
		}
		if s.lines != nil && len(state.Incoming) > 0 {
			if trip, ok := s.tt.Trips[state.Incoming[0].Trip]; ok {
				if line, ok := s.lines.Colors(trip.RouteID); ok {
					properties["fgColor"] = line.FgColor
					properties["bgColor"] = line.BgColor
				}
			}
		}
		collection.Features = append(collection.Features, stopFeature(stop, properties))
	}

	if err := c.JSON(collection); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return nil
}

type stopInfoResponse struct {
	people.Report
	PeopleRange int32 `json:"peopleRange"`
	Important   bool  `json:"important"`
}

func (s *Server) stopInfo(c *fiber.Ctx) error {
	stopID, err := s.stopParam(c)
	if err != nil {
		return badRequest(c, "invalid stop id: %v", err)
	}
	stop, ok := s.tt.Stops[stopID]
	if !ok {
		return notFound(c, "unknown stop %d", stopID)
	}

	stopCoord := geo.DMSCoord{Lat: stop.Lat, Lon: stop.Lon}.ToMeter()
	nearby := s.people.PersonsInCircle(stopCoord, s.cfg.NearbyResidentRange)

	resp := stopInfoResponse{
		Report:      people.DistanceReport(nearby),
		PeopleRange: s.cfg.NearbyResidentRange,
		Important:   s.boardings.IsImportant(stopID),
	}
	return c.JSON(resp)
}

func (s *Server) evaluateStop(c *fiber.Ctx) error {
	stopID, err := s.stopParam(c)
	if err != nil {
		return badRequest(c, "invalid stop id: %v", err)
	}

	opts := evaluate.Options{
		InterestingStop:  stopID,
		WalkSpeed:        c.QueryFloat("walkSpeed", 1.4),
		SearchRange:      int32(c.QueryInt("searchRange", 1000)),
		MoveableDistance: int32(c.QueryInt("moveableDistance", 1000)),
		MinimumRange:     int32(c.QueryInt("minimumRange", 0)),
		StatsToCollect:   uint32(c.QueryInt("stats", int(evaluate.CollectAll&^evaluate.IncludeRefs))),
		RoutingOptions:   s.routingOptions(c),
	}
	if opts.WalkSpeed <= 0 {
		return badRequest(c, "walkSpeed must be positive")
	}

	stats := s.evaluator.Evaluate(stopID, opts)
	return c.JSON(stats)
}

// routingOptions derives search options from query parameters,
// falling back to the configured defaults.
func (s *Server) routingOptions(c *fiber.Ctx) routing.Options {
	opts := s.cfg.DefaultRouting
	opts.StartTime = model.Time(c.QueryInt("startTime", int(opts.StartTime)))
	opts.Date = model.Date(c.QueryInt("date", int(opts.Date)))
	opts.SearchTime = int32(c.QueryInt("searchTime", int(opts.SearchTime)))
	if c.Query("minTransferTime") != "" {
		opts.MinTransferTime = int32(c.QueryInt("minTransferTime", 0))
		opts.OverrideMinTransferTime = true
	}
	return opts
}
