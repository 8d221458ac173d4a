package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/kavidoi/re-solve/internal/api"
	"github.com/kavidoi/re-solve/internal/config"
	"github.com/kavidoi/re-solve/internal/service"
	"github.com/kavidoi/re-solve/internal/storage/sqlite"
	"github.com/kavidoi/re-solve/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	router := api.NewRouter(api.Services{
		Users:    service.NewUserService(store),
		Groups:   service.NewGroupService(store),
		Expenses: service.NewExpenseService(store),
		Balances: service.NewBalanceService(store),
		Friends:  service.NewFriendService(store),
	}, cfg.CORS.Origin)

	slog.Info("Server starting", "address", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
