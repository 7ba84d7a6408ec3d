package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type calendarCSV struct {
	ServiceID int32  `csv:"service_id"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

func ParseCalendars(data io.Reader) ([]model.Calendar, error) {
	rows := []*calendarCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar csv: %w", err)
	}

	calendars := make([]model.Calendar, 0, len(rows))
	for _, row := range rows {
		start, err := parseDate(row.StartDate)
		if err != nil {
			return nil, fmt.Errorf("service '%d' start_date: %w", row.ServiceID, err)
		}
		end, err := parseDate(row.EndDate)
		if err != nil {
			return nil, fmt.Errorf("service '%d' end_date: %w", row.ServiceID, err)
		}
		if end < start {
			return nil, fmt.Errorf("service '%d' ends before it starts", row.ServiceID)
		}

		cal := model.Calendar{
			ServiceID: model.ServiceID(row.ServiceID),
			StartDate: start,
			EndDate:   end,
		}
		// Weekdays indexed by time.Weekday, which starts on Sunday.
		cal.Weekdays[0] = row.Sunday != 0
		cal.Weekdays[1] = row.Monday != 0
		cal.Weekdays[2] = row.Tuesday != 0
		cal.Weekdays[3] = row.Wednesday != 0
		cal.Weekdays[4] = row.Thursday != 0
		cal.Weekdays[5] = row.Friday != 0
		cal.Weekdays[6] = row.Saturday != 0

		calendars = append(calendars, cal)
	}

	return calendars, nil
}
