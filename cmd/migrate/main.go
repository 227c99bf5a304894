// Command migrate aplica el esquema embebido sobre la base configurada (DATABASE_URL o DB_*).
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Bodegas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodegas-api/pkg/config"
	"github.com/jhoicas/Bodegas-api/pkg/logger"
)

func main() {
	envFile := flag.String("env", ".env", "archivo de variables a cargar antes de leer la configuración")
	timeout := flag.Duration("timeout", time.Minute, "tiempo máximo de la migración")
	flag.Parse()

	// Las variables ya definidas en el entorno tienen prioridad sobre el archivo.
	_ = godotenv.Load(*envFile)

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}
	log.Info().Msg("esquema al día")
}
