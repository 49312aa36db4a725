// Package main - Entry point for the carbontrace prediction server
package main

import (
	"flag"
	"fmt"
	"log"

	"carbontrace/api"
	"carbontrace/core/factors"
	"carbontrace/core/inference"
	"carbontrace/db/history"
	"carbontrace/internal/config"
	"carbontrace/internal/logging"
)

const version = "1.0.0"

func main() {
	cfg := config.Default()

	cfgPath := flag.String("config", "", "JSON config file")
	addr := flag.String("addr", cfg.Server.Addr, "Server address")
	artifactPath := flag.String("artifact", cfg.Model.ArtifactPath, "Path to the trained model artifact")
	factorsPath := flag.String("factors", cfg.Factors.TablePath, "Optional HCL emission factor table")
	historyPath := flag.String("history", cfg.Server.HistoryPath, "Prediction log sqlite file (empty disables history)")
	flag.Parse()

	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
		config.Set(cfg)

		// File values become the defaults; explicitly passed flags win
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["addr"] {
			*addr = cfg.Server.Addr
		}
		if !set["artifact"] {
			*artifactPath = cfg.Model.ArtifactPath
		}
		if !set["factors"] {
			*factorsPath = cfg.Factors.TablePath
		}
		if !set["history"] {
			*historyPath = cfg.Server.HistoryPath
		}
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logging.Sync()

	table, err := factors.Load(*factorsPath)
	if err != nil {
		log.Fatalf("factors: %v", err)
	}

	engine, err := inference.NewService(*artifactPath, table)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	var store *history.Store
	if *historyPath != "" {
		store, err = history.Open(*historyPath)
		if err != nil {
			log.Fatalf("history: %v", err)
		}
		defer store.Close()
	}

	server := api.NewServerWithStore(engine, store, version)

	fmt.Printf("carbontrace server v%s listening on %s\n", version, *addr)
	if err := server.ListenAndServe(*addr); err != nil {
		log.Fatal(err)
	}
}
