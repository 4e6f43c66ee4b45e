package commands

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"covidwatch-backend/lib/configutil"
	"covidwatch-backend/lib/serviceutil"
	"covidwatch-backend/lib/sqliteutil"
	"covidwatch-backend/services/covidstats"
	"covidwatch-backend/services/covidstats/db"

	_ "modernc.org/sqlite"
)

const defaultDatabase = "covid.db"

// loadConfig reads config.json5 from the working directory. A missing
// file is fine, everything has a default.
func loadConfig() covidstats.Config {
	cfg, err := configutil.ReadConfig[covidstats.Config]("config.json5")
	if errors.Is(err, os.ErrNotExist) {
		return covidstats.Config{}
	}
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

// openDatabase resolves the snapshot database: --db flag, then config,
// then ./covid.db.
func openDatabase(flagValue string, cfg covidstats.Config) *sql.DB {
	path := flagValue
	if path == "" {
		path = cfg.Database
	}
	if path == "" {
		path = defaultDatabase
	}
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	return database
}

// loadSnapshot restores the snapshot with `id`, or the latest one when
// id is 0.
func loadSnapshot(ctx context.Context, service covidstats.Service, id int64) covidstats.StoredSnapshot {
	var stored covidstats.StoredSnapshot
	var err error
	if id > 0 {
		stored, err = service.Snapshot(ctx, id)
	} else {
		stored, err = service.LatestSnapshot(ctx)
	}
	if errors.Is(err, sql.ErrNoRows) {
		serviceutil.Fatal("no snapshots stored yet, run `covidwatch-cli scrape` or `covidwatch-cli import` first", err)
	}
	if err != nil {
		serviceutil.Fatal("failed to load snapshot", err)
	}
	return stored
}
