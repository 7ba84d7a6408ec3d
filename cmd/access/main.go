package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kollektivlab/access/model"
	"github.com/kollektivlab/access/parse"
	"github.com/kollektivlab/access/people"
	"github.com/kollektivlab/access/routing"
)

var rootCmd = &cobra.Command{
	Use:          "access",
	Short:        "Transit accessibility analyzer",
	Long:         "Analyzes how well a transit network serves the population around its stops",
	SilenceUsage: true,
}

var (
	gtfsDir       string
	residentsPath string
	linesPath     string
	boardingsPath string

	startTime       int32
	queryDate       int32
	searchTime      int32
	minTransferTime int32
	verbose         bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&gtfsDir, "gtfs", "", "data/raw", "directory holding the transit feed")
	rootCmd.PersistentFlags().StringVarP(&residentsPath, "residents", "", "", "resident dataset file")
	rootCmd.PersistentFlags().StringVarP(&linesPath, "line-register", "", "", "line register JSON file")
	rootCmd.PersistentFlags().StringVarP(&boardingsPath, "boardings", "", "", "boarding statistics file")
	rootCmd.PersistentFlags().Int32VarP(&startTime, "start-time", "", 10*3600, "query start, seconds since midnight")
	rootCmd.PersistentFlags().Int32VarP(&queryDate, "date", "", 0, "query date as yyyymmdd (default: feed start date)")
	rootCmd.PersistentFlags().Int32VarP(&searchTime, "search-time", "", 1800, "departure window per stop, seconds")
	rootCmd.PersistentFlags().Int32VarP(&minTransferTime, "min-transfer-time", "", -1, "override per-stop minimum transfer time, seconds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func configureLogging() {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func loadTimetable() (*routing.Timetable, error) {
	feed, err := parse.ParseFeed(gtfsDir)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}
	tt := routing.BuildTimetable(feed)
	log.Info().
		Int("stops", len(tt.Stops)).
		Int("trips", len(tt.Trips)).
		Int("routes", len(tt.Routes)).
		Msg("timetable loaded")
	return tt, nil
}

func loadPeople() (*people.People, error) {
	if residentsPath == "" {
		return nil, fmt.Errorf("resident dataset is required (--residents)")
	}
	f, err := os.Open(residentsPath)
	if err != nil {
		return nil, fmt.Errorf("opening resident dataset: %w", err)
	}
	defer f.Close()

	raw, err := parse.ParseResidents(f)
	if err != nil {
		return nil, fmt.Errorf("loading resident dataset: %w", err)
	}
	ppl := people.New(raw)
	log.Info().Int("residents", ppl.Len()).Msg("resident dataset loaded")
	return ppl, nil
}

func routingOptions(tt *routing.Timetable) routing.Options {
	opts := routing.Options{
		StartTime:  model.Time(startTime),
		Date:       model.Date(queryDate),
		SearchTime: searchTime,
	}
	if opts.Date == 0 {
		opts.Date = tt.StartDate
	}
	if minTransferTime >= 0 {
		opts.MinTransferTime = minTransferTime
		opts.OverrideMinTransferTime = true
	}
	return opts
}
