package connector

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// DSNBuilder assembles URL style connection strings for the postgres family of providers.
type DSNBuilder struct {
	u      url.URL
	port   int
	params url.Values
}

func NewDSNBuilder(scheme string) *DSNBuilder {
	return &DSNBuilder{u: url.URL{Scheme: scheme}, params: url.Values{}}
}

// Auth sets the credentials. An empty username leaves the userinfo out.
func (b *DSNBuilder) Auth(username, password string) *DSNBuilder {
	switch {
	case username == "":
		b.u.User = nil
	case password == "":
		b.u.User = url.User(username)
	default:
		b.u.User = url.UserPassword(username, password)
	}
	return b
}

func (b *DSNBuilder) Host(host string, port int) *DSNBuilder {
	b.port = port
	b.u.Host = host
	if port > 0 {
		b.u.Host = net.JoinHostPort(host, strconv.Itoa(port))
	}
	return b
}

func (b *DSNBuilder) Database(name string) *DSNBuilder {
	b.u.Path = ""
	if name != "" {
		b.u.Path = "/" + name
	}
	return b
}

// Param sets key, replacing earlier values. Empty values are ignored.
func (b *DSNBuilder) Param(key, value string) *DSNBuilder {
	if value != "" {
		b.params.Set(key, value)
	}
	return b
}

func (b *DSNBuilder) Params(params map[string]string) *DSNBuilder {
	for k, v := range params {
		b.Param(k, v)
	}
	return b
}

func (b *DSNBuilder) WithPostgresDefaults() *DSNBuilder {
	return b.Param("sslmode", "prefer").Param("connect_timeout", "10")
}

func (b *DSNBuilder) Validate() error {
	if b.u.Hostname() == "" {
		return fmt.Errorf("host is required")
	}
	if b.port <= 0 || b.port > 65535 {
		return fmt.Errorf("invalid port: %d", b.port)
	}
	return nil
}

// Build renders the DSN. Parameters are encoded in key order.
func (b *DSNBuilder) Build() string {
	u := b.u
	u.RawQuery = b.params.Encode()
	return u.String()
}
