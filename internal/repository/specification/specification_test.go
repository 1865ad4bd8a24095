package specification_test

import (
	"testing"

	"hcp-crm-be/internal/model"
	"hcp-crm-be/internal/repository/specification"
	"hcp-crm-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDBFromDSN("sqlite://:memory:", database.WithLogLevel(gormlogger.Silent))
	require.NoError(t, err)
	return db.Session(&gorm.Session{DryRun: true})
}

func TestSpecifications_BuildParameterizedQueries(t *testing.T) {
	sessionID := uuid.MustParse("8f14e45f-ceea-467f-a9f0-3c2b1a0d9e11")

	tests := []struct {
		name      string
		table     interface{}
		specs     []specification.Specification
		wantSQL   []string
		wantFirst interface{}
	}{
		{
			name:      "interactions of one HCP, newest first",
			table:     &[]model.Interaction{},
			specs:     []specification.Specification{specification.ByHCPID{HCPID: 7}, specification.LatestFirst{}},
			wantSQL:   []string{"hcp_id = ?", "created_at DESC", "id DESC"},
			wantFirst: uint(7),
		},
		{
			name:      "turns of one session in order",
			table:     &[]model.AgentTurn{},
			specs:     []specification.Specification{specification.BySessionID{SessionID: sessionID}, specification.OldestFirst{}},
			wantSQL:   []string{"session_id = ?", "created_at ASC"},
			wantFirst: sessionID,
		},
		{
			name:      "HCP by name ignores case and padding",
			table:     &[]model.HCP{},
			specs:     []specification.Specification{specification.ByNameInsensitive{Name: "  Dr. Asha Sharma "}},
			wantSQL:   []string{"LOWER(TRIM(name)) = LOWER(?)"},
			wantFirst: "Dr. Asha Sharma",
		},
		{
			name:      "by primary key",
			table:     &[]model.Interaction{},
			specs:     []specification.Specification{specification.ByID{ID: 3}},
			wantSQL:   []string{"id = ?"},
			wantFirst: uint(3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := dryRunDB(t)
			for _, spec := range tt.specs {
				query = spec.Apply(query)
			}
			stmt := query.Find(tt.table).Statement

			sql := stmt.SQL.String()
			for _, fragment := range tt.wantSQL {
				assert.Contains(t, sql, fragment)
			}
			require.NotEmpty(t, stmt.Vars)
			assert.Equal(t, tt.wantFirst, stmt.Vars[0])
		})
	}
}

func TestPagination_SkipsZeroValues(t *testing.T) {
	stmt := specification.Pagination{}.Apply(dryRunDB(t)).Find(&[]model.HCP{}).Statement
	assert.NotContains(t, stmt.SQL.String(), "LIMIT")
	assert.NotContains(t, stmt.SQL.String(), "OFFSET")

	stmt = specification.Pagination{Limit: 5}.Apply(dryRunDB(t)).Find(&[]model.HCP{}).Statement
	assert.Contains(t, stmt.SQL.String(), "LIMIT")
}
