// Command solverd serves the linear-programming solver over HTTP for the
// grapher frontend.
package main

import (
	"log"

	"lp-grapher/internal/server"
	"lp-grapher/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := server.LoadConfig()
	log.Printf("Starting solverd v%s (%s) on port %s", version.Version, cfg.Environment, cfg.Port)

	app := server.New(cfg)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("solverd: %v", err)
	}
}
