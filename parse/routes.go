package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type routeCSV struct {
	ID        uint64 `csv:"route_id"`
	AgencyID  uint64 `csv:"agency_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      int    `csv:"route_type"`
	Desc      string `csv:"route_desc"`
}

func ParseRoutes(data io.Reader) ([]model.Route, error) {
	rows := []*routeCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling routes csv: %w", err)
	}

	seen := map[model.RouteID]bool{}
	routes := make([]model.Route, 0, len(rows))
	for _, row := range rows {
		id := model.RouteID(row.ID)
		if id == 0 {
			return nil, fmt.Errorf("empty route_id")
		}
		if seen[id] {
			return nil, fmt.Errorf("repeated route_id '%d'", row.ID)
		}
		seen[id] = true

		if row.ShortName == "" && row.LongName == "" {
			return nil, fmt.Errorf("route '%d' has neither short nor long name", row.ID)
		}

		routes = append(routes, model.Route{
			ID:        id,
			AgencyID:  model.AgencyID(row.AgencyID),
			ShortName: row.ShortName,
			LongName:  row.LongName,
			Type:      row.Type,
			Desc:      row.Desc,
		})
	}

	return routes, nil
}
