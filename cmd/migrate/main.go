package main

import (
	"context"
	"os"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/config"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/migrate"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/database"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	dbCfg := config.LoadDB(log)

	db := database.ConnectDBForMigration(&dbCfg.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()

	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateOrderDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	log.Info("Миграция успешно завершена")
}
