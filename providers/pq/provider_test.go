package pq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Konsultn-Engineering/querykit/connector"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(connector.Config{
		Host:     "localhost",
		Port:     5432,
		Username: "app",
		Password: "pw",
		Database: "shop",
		SSLMode:  "disable",
	})
	assert.Equal(t, "postgres://app:pw@localhost:5432/shop?connect_timeout=10&sslmode=disable", dsn)
}

func TestDialectUsesColonPlaceholders(t *testing.T) {
	d := (&Provider{}).Dialect()
	assert.Equal(t, "postgres", d.Name())
	assert.Equal(t, ":id_0", d.Placeholder("id_0"))
}
