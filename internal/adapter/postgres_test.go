package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			name: "basic connection",
			config: Config{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode and extra options",
			config: Config{
				Host:     "prod.example.com",
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require", "search_path": "stats", "application_name": "leapframe"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin application_name=leapframe search_path=stats",
		},
		{
			name:     "defaults",
			config:   Config{Database: "mydb"},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.config))
		})
	}
}

func TestPostgresAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	a := NewPostgresAdapter(nil)

	assert.False(t, a.IsConnected())
	assert.NoError(t, a.Close())
	assert.Equal(t, "postgres", a.DialectName())

	err := a.Exec(ctx, "SELECT 1")
	assert.ErrorContains(t, err, "not established")

	_, err = a.ReadTable(ctx, "households")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")
}
