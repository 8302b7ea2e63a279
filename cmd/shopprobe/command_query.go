package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	shopprobe "github.com/shibukawa/shopprobe"
	"github.com/shibukawa/shopprobe/inspect"
	"github.com/shibukawa/shopprobe/plan"
	"github.com/shibukawa/shopprobe/query"
)

// Error definitions
var (
	ErrNoDatabasesConfigured = errors.New("no databases configured")
	ErrEnvironmentNotFound   = errors.New("environment not found")
)

const separatorWidth = 60

// QueryCmd represents the query command
type QueryCmd struct {
	DB  string `help:"Database connection string"`
	Env string `help:"Environment name from configuration"`
}

// Run executes the query command. Connectivity failures (including a
// missing database file) propagate and exit non-zero; an insufficient
// schema or an execution-time failure is reported and ends gracefully.
func (cmd *QueryCmd) Run(ctx *Context) error {
	config, err := shopprobe.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbURL, err := resolveDatabaseURL(config, cmd.DB, cmd.Env)
	if err != nil {
		return err
	}

	connector := inspect.NewConnector()
	db, dbType, err := connector.ConnectExisting(dbURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := connector.Ping(db); err != nil {
		return err
	}

	inspector, err := inspect.NewInspector(dbType)
	if err != nil {
		return err
	}

	snapshot, err := inspect.Snapshot(db, inspector)
	if err != nil {
		return err
	}

	fmt.Printf("Tables in database: %s\n", strings.Join(snapshot.TableNames(), ", "))

	p, err := plan.Build(snapshot)
	if err != nil {
		if errors.Is(err, plan.ErrSchemaInsufficient) {
			fmt.Println("Cannot build query:", err)
			return nil
		}
		return err
	}

	separator := strings.Repeat("-", separatorWidth)
	fmt.Printf("\nExecuting query:\n%s\n%s\n%s\n", separator, p.SQL, separator)

	executor := query.NewExecutor(db)
	timeout := time.Duration(config.Query.Timeout) * time.Second
	result, err := executor.Execute(context.Background(), p.SQL, timeout)
	if err != nil {
		// A rendered literal fallback column may not exist; report and
		// end gracefully instead of crashing.
		fmt.Println("Error while running query:", err)
		return nil
	}

	if result.Count == 0 {
		fmt.Println("Query returned 0 rows.")
		return nil
	}

	return query.FormatTable(result, os.Stdout)
}

// resolveDatabaseURL picks the connection string: the --db flag wins, then
// the named (or default) environment from configuration.
func resolveDatabaseURL(config *shopprobe.Config, flagURL, flagEnv string) (string, error) {
	if flagURL != "" {
		return flagURL, nil
	}

	env := flagEnv
	if env == "" {
		env = config.Query.DefaultEnvironment
	}
	if len(config.Databases) == 0 {
		return "", ErrNoDatabasesConfigured
	}
	dbConfig, ok := config.Databases[env]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrEnvironmentNotFound, env)
	}
	return dbConfig.Connection, nil
}
