package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/kollektivlab/access/model"
)

type feedInfoCSV struct {
	ID            string `csv:"feed_id"`
	PublisherName string `csv:"feed_publisher_name"`
	PublisherURL  string `csv:"feed_publisher_url"`
	Lang          string `csv:"feed_lang"`
	Version       string `csv:"feed_version"`
}

func ParseFeedInfo(data io.Reader) (*model.FeedInfo, error) {
	rows := []*feedInfoCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshaling feed_info csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty feed_info")
	}

	row := rows[0]
	return &model.FeedInfo{
		ID:            row.ID,
		PublisherName: row.PublisherName,
		PublisherURL:  row.PublisherURL,
		Lang:          row.Lang,
		Version:       row.Version,
	}, nil
}
