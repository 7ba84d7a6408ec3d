package main

import (
	"github.com/spf13/cobra"

	"github.com/kollektivlab/access/boarding"
	"github.com/kollektivlab/access/lineregister"
	"github.com/kollektivlab/access/routecache"
	"github.com/kollektivlab/access/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	RunE:  serve,
}

var (
	listenAddr string
	cacheDSN   string
	cachePG    string
)

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", ":8080", "listen address")
	serveCmd.Flags().StringVarP(&cacheDSN, "cache-sqlite", "", "", "SQLite route cache path (default: in-memory cache)")
	serveCmd.Flags().StringVarP(&cachePG, "cache-postgres", "", "", "Postgres route cache connection string")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	configureLogging()

	tt, err := loadTimetable()
	if err != nil {
		return err
	}
	ppl, err := loadPeople()
	if err != nil {
		return err
	}

	var lines *lineregister.LineRegister
	if linesPath != "" {
		lines, err = lineregister.Load(linesPath)
		if err != nil {
			return err
		}
	}

	var boardings boarding.Stats
	if boardingsPath != "" {
		boardings, err = boarding.Load(boardingsPath)
		if err != nil {
			return err
		}
	}

	var store routecache.Store
	switch {
	case cachePG != "":
		store, err = routecache.NewPostgresStore(cachePG)
	case cacheDSN != "":
		store, err = routecache.NewSQLiteStore(cacheDSN)
	default:
		store = routecache.NewMemoryStore()
	}
	if err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(tt, ppl, routecache.New(store), lines, boardings, server.Config{
		DefaultRouting: routingOptions(tt),
	})
	return srv.Listen(listenAddr)
}
