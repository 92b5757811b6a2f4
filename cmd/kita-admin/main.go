package main

import (
	"fmt"
	"os"

	"github.com/kitaconnect/kita-admin/internal/auth"
	"github.com/kitaconnect/kita-admin/internal/cache"
	"github.com/kitaconnect/kita-admin/internal/config"
	"github.com/kitaconnect/kita-admin/internal/db"
	"github.com/kitaconnect/kita-admin/internal/excel"
	httphandler "github.com/kitaconnect/kita-admin/internal/http"
	"github.com/kitaconnect/kita-admin/internal/http/middleware"
	"github.com/kitaconnect/kita-admin/internal/logger"
	"github.com/kitaconnect/kita-admin/internal/pdf"
	"github.com/kitaconnect/kita-admin/internal/repository"
	"github.com/kitaconnect/kita-admin/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	registryRepo := repository.NewRegistryRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)
	boardRepo := repository.NewBoardRepository(database)
	queryCache := cache.New()

	viewService := service.NewViewService(registryRepo, scheduleRepo, boardRepo, queryCache, cfg.Admin.ExitWindowDays, log)
	exportService := service.NewExportService(viewService, excel.NewGenerator(), pdf.NewGenerator(), log)
	adminService := service.NewAdminService(registryRepo, scheduleRepo, boardRepo, queryCache, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(viewService, exportService, adminService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting kita admin service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
