package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantDriver Driver
		wantDSN    string
		wantErr    bool
	}{
		{name: "sqlite file", url: "sqlite://app.db", wantDriver: DriverSQLite, wantDSN: "app.db"},
		{name: "sqlite memory", url: "sqlite://:memory:", wantDriver: DriverSQLite, wantDSN: ":memory:"},
		{name: "sqlite upper scheme", url: "SQLITE://data/crm.db", wantDriver: DriverSQLite, wantDSN: "data/crm.db"},
		{name: "postgres url", url: "postgres://u:p@localhost:5432/crm", wantDriver: DriverPostgres, wantDSN: "postgres://u:p@localhost:5432/crm"},
		{name: "postgres dsn", url: "host=localhost user=u dbname=crm", wantDriver: DriverPostgres, wantDSN: "host=localhost user=u dbname=crm"},
		{name: "empty", url: "  ", wantErr: true},
		{name: "sqlite without path", url: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn, err := ParseURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, driver)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func TestNewGormDBFromDSN_SQLiteMemory(t *testing.T) {
	db, err := NewGormDBFromDSN("sqlite://:memory:", WithLogLevel(logger.Silent))
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
