// Package server exposes the analyzer over HTTP. All heavy state is
// built at startup and shared read-only between requests; evaluation
// and search state is per-request.
package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/kollektivlab/access/boarding"
	"github.com/kollektivlab/access/evaluate"
	"github.com/kollektivlab/access/lineregister"
	"github.com/kollektivlab/access/people"
	"github.com/kollektivlab/access/routecache"
	"github.com/kollektivlab/access/routing"
)

type Config struct {
	// DefaultRouting applies to reachability endpoints that do not
	// override it with query parameters.
	DefaultRouting routing.Options

	// NearbyResidentRange bounds the stop-info population circle,
	// in meters.
	NearbyResidentRange int32
}

type Server struct {
	app *fiber.App

	tt        *routing.Timetable
	people    *people.People
	evaluator *evaluate.Evaluator
	cache     *routecache.Cache
	lines     *lineregister.LineRegister
	boardings boarding.Stats
	cfg       Config
}

// New wires the HTTP adapter. lines and boardings may be nil when
// the corresponding datasets are not deployed.
func New(
	tt *routing.Timetable,
	ppl *people.People,
	cache *routecache.Cache,
	lines *lineregister.LineRegister,
	boardings boarding.Stats,
	cfg Config,
) *Server {
	if cfg.NearbyResidentRange == 0 {
		cfg.NearbyResidentRange = 500
	}

	s := &Server{
		app:       fiber.New(fiber.Config{DisableStartupMessage: true}),
		tt:        tt,
		people:    ppl,
		evaluator: evaluate.New(ppl, tt),
		cache:     cache,
		lines:     lines,
		boardings: boardings,
		cfg:       cfg,
	}

	s.app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Msg("request")
		return err
	})

	s.app.Get("/", s.health)
	s.app.Get("/stops", s.stops)
	s.app.Get("/graphFrom/:stopId", s.graphFrom)
	s.app.Get("/travelTimeLayer/:stopId", s.travelTimeLayer)
	s.app.Get("/stopInfo/:stopId", s.stopInfo)
	s.app.Get("/departures/:stopId", s.departures)
	s.app.Get("/evaluate/:stopId", s.evaluateStop)
	s.app.Get("/evaluateLayer/:stopId", s.evaluateLayer)

	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until the listener fails.
func (s *Server) Listen(addr string) error {
	log.Info().Str("addr", addr).Msg("starting server")
	return s.app.Listen(addr)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func badRequest(c *fiber.Ctx, format string, args ...interface{}) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fmt.Sprintf(format, args...),
	})
}

func notFound(c *fiber.Ctx, format string, args ...interface{}) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": fmt.Sprintf(format, args...),
	})
}
