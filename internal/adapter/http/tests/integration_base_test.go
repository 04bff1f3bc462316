//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dbadapter "tasktracker/internal/adapter/db"
	"tasktracker/internal/config"
)

// IntegrationSuiteBase owns a throwaway MySQL schema named *_test. Every
// test starts from freshly applied migrations.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	conf := &config.Config{
		DbHost:            envOrDefault("MYSQL_HOST", "127.0.0.1"),
		DbPort:            envOrDefault("MYSQL_PORT", "3306"),
		DbUser:            envOrDefault("MYSQL_ROOT_USER", "root"),
		DbPassword:        envOrDefault("MYSQL_ROOT_PASSWORD", "root"),
		DbParams:          os.Getenv("MYSQL_PARAMS"),
		DbMaxOpenConns:    4,
		DbMaxIdleConns:    4,
		DbConnMaxLifetime: 0,
	}
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "tasktracker")+"_test")
	if !strings.HasSuffix(database, "_test") {
		s.T().Skipf("skipping integration suite: %q is not a *_test database", database)
	}

	adminDB, err := dbadapter.ConnectDB(conf)
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	conf.DbName = database
	s.DB, err = dbadapter.ConnectDB(conf)
	s.Require().NoError(err)
	s.testDBName = database
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
	if s.adminDB != nil {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
		s.Require().NoError(s.adminDB.Close())
	}
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	resetSchema(s.T(), s.DB)
}

// resetSchema runs every down migration newest first, then every up
// migration oldest first.
func resetSchema(t *testing.T, conn *sqlx.DB) {
	t.Helper()

	downs := migrationFiles(t, "*.down.sql")
	sort.Sort(sort.Reverse(sort.StringSlice(downs)))
	for _, file := range downs {
		execFile(t, conn, file)
	}
	for _, file := range migrationFiles(t, "*.up.sql") {
		execFile(t, conn, file)
	}
}

func migrationFiles(t *testing.T, pattern string) []string {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(projectRoot(t), "db", "migrations", pattern))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations match %s", pattern)
	sort.Strings(files)
	return files
}

func execFile(t *testing.T, conn *sqlx.DB, file string) {
	t.Helper()

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	_, err = conn.Exec(string(content))
	require.NoError(t, err, filepath.Base(file))
}

func projectRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", ".."))
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
