package database

import (
	"context"
	"database/sql"
	"regexp"
	"strconv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	require.NoError(t, err)
	return n
}

func setupMockDB(t *testing.T) (*PostgresClient, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return NewPostgresClientFromDB(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   models.DatabaseConfig
		expected string
	}{
		{
			name: "local",
			config: models.DatabaseConfig{
				Host: "localhost", Port: 5432, Username: "postgres", Password: "secret",
				Database: "dispatch", SSLMode: "disable",
			},
			expected: "host=localhost port=5432 user=postgres password=secret dbname=dispatch sslmode=disable",
		},
		{
			name: "ssl required",
			config: models.DatabaseConfig{
				Host: "db.internal", Port: 6432, Username: "svc", Password: "p@ss",
				Database: "prod", SSLMode: "require",
			},
			expected: "host=db.internal port=6432 user=svc password=p@ss dbname=prod sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(tt.config))
		})
	}
}

func TestPostgresClient_GetDB(t *testing.T) {
	client, mock := setupMockDB(t)

	assert.NotNil(t, client.GetDB())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Ping(t *testing.T) {
	client, mock := setupMockDB(t)
	mock.ExpectPing()

	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_EnsureSchema(t *testing.T) {
	t.Run("applies schema", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS drivers")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, client.EnsureSchema(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps failure", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS drivers")).
			WillReturnError(sql.ErrConnDone)

		err := client.EnsureSchema(context.Background())

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.Contains(t, err.Error(), "failed to apply schema")
	})
}

func TestPostgresClient_Close(t *testing.T) {
	t.Run("close succeeds", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectClose()

		assert.NoError(t, client.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("close error propagates", func(t *testing.T) {
		client, mock := setupMockDB(t)
		mock.ExpectClose().WillReturnError(sql.ErrConnDone)

		assert.Equal(t, sql.ErrConnDone, client.Close())
	})

	t.Run("nil db", func(t *testing.T) {
		client := &PostgresClient{}
		assert.NoError(t, client.Close())
	})
}
