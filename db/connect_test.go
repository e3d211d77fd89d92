package db

import (
	"testing"

	"houses-api/confs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  confs.Config
		want string
	}{
		{
			name: "url gets sslmode",
			cfg:  confs.Config{DBURL: "postgres://u:p@db.example.com/houses"},
			want: "postgres://u:p@db.example.com/houses?sslmode=require",
		},
		{
			name: "url with query gets sslmode appended",
			cfg:  confs.Config{DBURL: "postgres://u:p@db.example.com/houses?connect_timeout=5"},
			want: "postgres://u:p@db.example.com/houses?connect_timeout=5&sslmode=require",
		},
		{
			name: "explicit sslmode kept",
			cfg:  confs.Config{DBURL: "postgres://u:p@localhost/houses?sslmode=disable"},
			want: "postgres://u:p@localhost/houses?sslmode=disable",
		},
		{
			name: "localhost parameters disable ssl",
			cfg:  confs.Config{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "houses"},
			want: "host=localhost user=u password=p dbname=houses port=5432 sslmode=disable TimeZone=UTC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := postgresDSN(&tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostgresDSN_Missing(t *testing.T) {
	_, err := postgresDSN(&confs.Config{DBHost: "localhost"})
	assert.Error(t, err)
}

func TestNewMemoryMigrates(t *testing.T) {
	database, err := NewMemory()
	require.NoError(t, err)

	for _, table := range []string{"users", "houses", "books", "reviews"} {
		assert.True(t, database.GetDB().Migrator().HasTable(table), table)
	}
}
