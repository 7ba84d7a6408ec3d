package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type calendarDateCSV struct {
	ServiceID     int32  `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

func ParseCalendarDates(data io.Reader) ([]model.CalendarDate, error) {
	rows := []*calendarDateCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates csv: %w", err)
	}

	dates := make([]model.CalendarDate, 0, len(rows))
	for _, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("service '%d': %w", row.ServiceID, err)
		}
		if row.ExceptionType != 1 && row.ExceptionType != 2 {
			return nil, fmt.Errorf("service '%d' has exception_type %d", row.ServiceID, row.ExceptionType)
		}

		dates = append(dates, model.CalendarDate{
			ServiceID:     model.ServiceID(row.ServiceID),
			Date:          date,
			ExceptionType: row.ExceptionType,
		})
	}

	return dates, nil
}
