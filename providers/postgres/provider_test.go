package postgres

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
	})
	assert.Equal(t, "postgres://app:pw@localhost:5432/shop?connect_timeout=10&sslmode=prefer", dsn)
}

func TestDialectUsesAtPlaceholders(t *testing.T) {
	d := (&Provider{}).Dialect()
	assert.Equal(t, "@id_0", d.Placeholder("id_0"))
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, connector.Providers(), "postgres")
}
