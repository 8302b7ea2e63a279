package inspect

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver (pgx)
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// Connector handles database connections for the pipeline commands
type Connector struct {
	poolSettings ConnectionPoolSettings
}

// ConnectionPoolSettings defines database connection pool configuration
type ConnectionPoolSettings struct {
	MaxOpenConns    int // Maximum number of open connections
	MaxIdleConns    int // Maximum number of idle connections
	ConnMaxLifetime int // Maximum lifetime of connections in seconds
}

// ConnectionInfo contains parsed database connection information
type ConnectionInfo struct {
	Type     string
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

// NewConnector creates a new database connector with default settings
func NewConnector() *Connector {
	return &Connector{
		poolSettings: ConnectionPoolSettings{
			MaxOpenConns:    5,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
	}
}

// SetPoolSettings configures connection pool settings
func (c *Connector) SetPoolSettings(settings ConnectionPoolSettings) {
	c.poolSettings = settings
}

// ParseDatabaseURL extracts the database type from a connection URL
func (c *Connector) ParseDatabaseURL(databaseURL string) (string, error) {
	if databaseURL == "" {
		return "", ErrEmptyDatabaseURL
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", ErrInvalidDatabaseURL
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return "postgresql", nil
	case "mysql":
		return "mysql", nil
	case "sqlite", "sqlite3":
		return "sqlite", nil
	default:
		return "", ErrUnsupportedDatabase
	}
}

// ParseConnectionInfo parses a database URL into connection information
func (c *Connector) ParseConnectionInfo(databaseURL string) (ConnectionInfo, error) {
	dbType, err := c.ParseDatabaseURL(databaseURL)
	if err != nil {
		return ConnectionInfo{}, err
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return ConnectionInfo{}, ErrInvalidDatabaseURL
	}

	info := ConnectionInfo{Type: dbType}

	switch dbType {
	case "postgresql", "mysql":
		info.Host = u.Hostname()
		info.Port = u.Port()
		if info.Port == "" {
			if dbType == "mysql" {
				info.Port = "3306"
			} else {
				info.Port = "5432"
			}
		}
		info.Database = strings.TrimPrefix(u.Path, "/")
		if u.User != nil {
			info.Username = u.User.Username()
			if password, ok := u.User.Password(); ok {
				info.Password = password
			}
		}
		if info.Host == "" || info.Database == "" {
			return ConnectionInfo{}, ErrInvalidDatabaseURL
		}
	case "sqlite":
		// Keep the raw path text; url.Parse would mangle ":memory:"
		rest := databaseURL
		if i := strings.Index(rest, "://"); i >= 0 {
			rest = rest[i+3:]
		}
		info.Database = rest
		if info.Database == "" {
			return ConnectionInfo{}, ErrInvalidDatabaseURL
		}
	}

	return info, nil
}

// Connect establishes a database connection from a URL
func (c *Connector) Connect(databaseURL string) (*sql.DB, string, error) {
	info, err := c.ParseConnectionInfo(databaseURL)
	if err != nil {
		return nil, "", err
	}

	connStr := c.driverConnectionString(info)

	db, err := sql.Open(c.driverName(info.Type), connStr)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	db.SetMaxOpenConns(c.poolSettings.MaxOpenConns)
	db.SetMaxIdleConns(c.poolSettings.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(c.poolSettings.ConnMaxLifetime) * time.Second)

	return db, info.Type, nil
}

// ConnectExisting behaves like Connect but refuses to implicitly create a
// missing SQLite database file. The sqlite3 driver creates the file on open,
// which would turn a typo into an empty database instead of an error.
func (c *Connector) ConnectExisting(databaseURL string) (*sql.DB, string, error) {
	info, err := c.ParseConnectionInfo(databaseURL)
	if err != nil {
		return nil, "", err
	}

	if info.Type == "sqlite" && !strings.HasPrefix(info.Database, ":memory:") {
		if _, err := os.Stat(info.Database); os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", ErrDatabaseNotFound, info.Database)
		}
	}

	return c.Connect(databaseURL)
}

// Ping tests the database connection
func (c *Connector) Ping(db *sql.DB) error {
	if db == nil {
		return ErrConnectionFailed
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// driverConnectionString converts parsed connection info into the
// driver-specific connection string format
func (c *Connector) driverConnectionString(info ConnectionInfo) string {
	switch info.Type {
	case "postgresql":
		auth := ""
		if info.Username != "" {
			auth = info.Username
			if info.Password != "" {
				auth += ":" + info.Password
			}
			auth += "@"
		}
		connStr := fmt.Sprintf("postgres://%s%s:%s/%s", auth, info.Host, info.Port, info.Database)
		if !strings.Contains(connStr, "sslmode=") {
			connStr += "?sslmode=disable"
		}
		return connStr
	case "mysql":
		// go-sql-driver format: user:pass@tcp(host:port)/dbname
		connStr := ""
		if info.Username != "" {
			connStr = info.Username
			if info.Password != "" {
				connStr += ":" + info.Password
			}
			connStr += "@"
		}
		return fmt.Sprintf("%stcp(%s:%s)/%s", connStr, info.Host, info.Port, info.Database)
	case "sqlite":
		// SQLite uses the file path directly
		return info.Database
	default:
		return ""
	}
}

func (c *Connector) driverName(dbType string) string {
	switch dbType {
	case "postgresql":
		return "pgx"
	case "mysql":
		return "mysql"
	case "sqlite":
		return "sqlite3"
	default:
		return ""
	}
}
