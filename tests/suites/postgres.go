package suites

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/joefazee/placement/app/database"

	// migration drivers
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	postgresImage = "postgres:17.5-alpine3.21"
	postgresPort  = "5432/tcp"
)

// PostgresContainer is a throwaway Postgres together with the database
// config that reaches it.
type PostgresContainer struct {
	testcontainers.Container
	Config database.Config
}

// StartPostgres launches a Postgres container and waits until it answers
// queries.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	cfg := database.Config{
		User:         "testuser",
		Password:     "testpass",
		Database:     "placement_test",
		MaxOpenConns: 20,
		MaxIdleConns: 5,
	}

	readyURL := func(host string, port nat.Port) string {
		target := cfg
		target.Host, target.Port = host, port.Port()
		return target.URL()
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{postgresPort},
			Cmd:          []string{"postgres", "-c", "fsync=off"},
			Env: map[string]string{
				"POSTGRES_DB":       cfg.Database,
				"POSTGRES_USER":     cfg.User,
				"POSTGRES_PASSWORD": cfg.Password,
			},
			WaitingFor: wait.ForSQL(postgresPort, "postgres", readyURL).
				WithStartupTimeout(30 * time.Second).
				WithQuery("SELECT 1"),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		return nil, fmt.Errorf("container port: %w", err)
	}
	cfg.Host, cfg.Port = host, port.Port()

	return &PostgresContainer{Container: container, Config: cfg}, nil
}

// RepositoryTestSuite gives embedding suites a migrated Postgres shared by
// all their tests. Every table except schema_migrations is truncated
// between tests.
type RepositoryTestSuite struct {
	suite.Suite
	Postgres    *PostgresContainer
	DB          *gorm.DB
	AutoMigrate bool
}

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.T().Helper()

	if testing.Short() {
		suite.T().Skip("Skipping database integration tests in short mode")
	}

	pg, err := StartPostgres(context.Background())
	if err != nil {
		suite.T().Fatalf("Failed to create postgres container: %v", err)
	}
	suite.Postgres = pg
	suite.T().Cleanup(suite.cleanup)

	db, err := database.New(&pg.Config)
	if err != nil {
		suite.T().Fatalf("Failed to connect: %v", err)
	}
	suite.DB = db

	if suite.AutoMigrate {
		if err := suite.migrate(); err != nil {
			suite.T().Fatalf("Failed to run migrations: %v", err)
		}
	}
}

func (suite *RepositoryTestSuite) cleanup() {
	if suite.DB != nil {
		_ = database.Close(suite.DB)
	}
	if suite.Postgres != nil {
		_ = suite.Postgres.Terminate(context.Background())
	}
}

// migrationsDir walks up from the working directory to the module root.
func migrationsDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return filepath.Join(wd, "migrations"), nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", errors.New("module root not found")
		}
		wd = parent
	}
}

func (suite *RepositoryTestSuite) migrate() error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+dir, suite.Postgres.Config.URL())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (suite *RepositoryTestSuite) TearDownTest() {
	suite.T().Helper()
	if suite.DB == nil {
		return
	}

	var tables []string
	suite.DB.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		AND table_name <> 'schema_migrations'
	`).Scan(&tables)
	if len(tables) == 0 {
		return
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf("%q", table)
	}
	// RESTART IDENTITY also rewinds owned sequences such as companies_company_id_seq.
	err := suite.DB.Exec("TRUNCATE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE").Error
	if err != nil {
		suite.T().Fatalf("Failed to truncate tables: %v", err)
	}
}

// CountRecords counts the rows of table.
func (suite *RepositoryTestSuite) CountRecords(table string) int64 {
	var c int64
	suite.DB.Table(table).Count(&c)
	return c
}

func (suite *RepositoryTestSuite) AssertDBError(err error, args ...interface{}) {
	suite.Assert().Error(err, args...)
}

func (suite *RepositoryTestSuite) AssertNoDBError(err error, args ...interface{}) {
	suite.Assert().NoError(err, args...)
}

// ExecRaw runs a statement outside any repository, for setting up states
// the API cannot reach.
func (suite *RepositoryTestSuite) ExecRaw(sql string, args ...interface{}) error {
	return suite.DB.Exec(sql, args...).Error
}
