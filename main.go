package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"waterbill-server/confs"
	"waterbill-server/db"
	"waterbill-server/server"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	// connect to database Postgres
	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to DB")
	}

	// run server
	srv := server.NewServer(database, cfg, log.Logger)
	srv.Start()
}
