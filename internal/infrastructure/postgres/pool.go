package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Bodegas-api/pkg/config"
)

// minConns conexiones que el pool mantiene abiertas aunque no haya tráfico.
const minConns = 2

// poolConfig arma la configuración del pool sin abrir conexiones.
// Las sesiones corren en UTC: arrival_date y expiry_date se comparan en esa zona.
func poolConfig(cfg config.DBConfig, appName string) (*pgxpool.Config, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = cfg.DSN()
	}
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	pc.MinConns = min(minConns, pc.MaxConns)
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	params := pc.ConnConfig.RuntimeParams
	params["timezone"] = "UTC"
	if appName != "" {
		params["application_name"] = appName
	}
	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// NewPool abre el pool de la base de bodegas y verifica la conexión.
// DATABASE_URL tiene prioridad; si no está, el DSN sale de DB_HOST, DB_PORT, etc.
func NewPool(ctx context.Context, cfg config.DBConfig, appName string) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg, appName)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}
