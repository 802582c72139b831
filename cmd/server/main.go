package main

import (
	"log"
	"net/http"

	"github.com/kyoko-docs/kanban/internal/config"
	"github.com/kyoko-docs/kanban/internal/serverapp"
)

func main() {
	cfg, err := config.LoadOrDefault("kanban_config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       cfg.Server.DataDir,
		StaticDir:     "static",
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
