package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type agencyCSV struct {
	ID       uint64 `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
	Lang     string `csv:"agency_lang"`
	FareURL  string `csv:"agency_fare_url"`
}

func ParseAgencies(data io.Reader) ([]model.Agency, error) {
	rows := []*agencyCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling agency csv: %w", err)
	}

	agencies := make([]model.Agency, 0, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			return nil, fmt.Errorf("empty agency_name for agency '%d'", row.ID)
		}
		agencies = append(agencies, model.Agency{
			ID:       model.AgencyID(row.ID),
			Name:     row.Name,
			URL:      row.URL,
			Timezone: row.Timezone,
			Lang:     row.Lang,
			FareURL:  row.FareURL,
		})
	}

	return agencies, nil
}
