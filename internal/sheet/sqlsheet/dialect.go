package sqlsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose dialect name.
	Goose string
	// numbered selects $1-style placeholders instead of ?.
	numbered bool
}

var (
	Postgres = Dialect{Driver: "pgx", Goose: "postgres", numbered: true}
	SQLite   = Dialect{Driver: "sqlite", Goose: "sqlite3"}
)

// DialectFor returns the dialect of a backend name from the configuration.
func DialectFor(backend string) (Dialect, error) {
	switch strings.ToLower(backend) {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported sql backend %q", backend)
	}
}

// rebind rewrites ? placeholders into the dialect's form.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
