// Command migrate runs schema operations for the API database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"coursehub/internal/config"
	"coursehub/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("schema migrated")
	case "status":
		tables, err := database.SchemaStatus(db)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		missing := 0
		for _, t := range tables {
			if !t.Exists {
				missing++
				log.Printf("missing: %s", t.Table)
			}
		}
		log.Printf("env=%s tables=%d missing=%d", cfg.Env, len(tables), missing)
	default:
		return usage()
	}

	return nil
}
