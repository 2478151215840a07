// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "marketplace",
		Password: "sekret",
		Database: "marketplace",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Equal(t,
		"host=db.internal port=5433 user=marketplace password=sekret dbname=marketplace sslmode=require TimeZone=UTC",
		dsn)
}
