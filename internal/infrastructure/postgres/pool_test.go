package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodegas-api/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5433, User: "bodega", Password: "p@ss", DBName: "bodegas", SSLMode: "disable", MaxConns: 10}

	pc, err := poolConfig(cfg, "bodegas-api")
	require.NoError(t, err)

	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss", pc.ConnConfig.Password)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "bodegas-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@remote:6000/otra?sslmode=disable", Host: "ignorado", Port: 1}

	pc, err := poolConfig(cfg, "")
	require.NoError(t, err)

	assert.Equal(t, "remote", pc.ConnConfig.Host)
	assert.Equal(t, "otra", pc.ConnConfig.Database)
	_, ok := pc.ConnConfig.RuntimeParams["application_name"]
	assert.False(t, ok)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"}, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse DSN")
}
