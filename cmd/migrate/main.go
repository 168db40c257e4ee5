package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/nexus"
)

type config struct {
	DB   database.Config
	Path string `env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// usage: migrate [up|down|steps N|version|force V]
func main() {
	flag.Parse()
	zl := logger.NewZeroLogger(os.Stdout, logger.LevelInfo, logger.Fields{"service": "placement-migrate"})

	var cfg config
	if err := nexus.Load(&cfg); err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if err := cfg.DB.Validate(); err != nil {
		zl.Fatal(err, nil)
	}

	m, err := migrate.New("file://"+cfg.Path, cfg.DB.URL())
	if err != nil {
		zl.Fatal(err, map[string]interface{}{"path": cfg.Path})
	}
	defer func() { _, _ = m.Close() }()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "steps":
		var n int
		n, err = strconv.Atoi(flag.Arg(1))
		if err == nil {
			err = m.Steps(n)
		}
	case "force":
		var v int
		v, err = strconv.Atoi(flag.Arg(1))
		if err == nil {
			err = m.Force(v)
		}
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			zl.Fatal(verr, nil)
		}
		zl.Info("schema version", map[string]interface{}{"version": version, "dirty": dirty})
		return
	default:
		log.Fatalf("unknown command %q", cmd)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		zl.Fatal(err, map[string]interface{}{"command": cmd})
	}
	zl.Info("migrations applied", map[string]interface{}{"command": cmd})
}
