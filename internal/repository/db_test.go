package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		page       Page
		wantLimit  int
		wantOffset int
	}{
		{"defaults", Page{}, defaultPageSize, 0},
		{"caps limit", Page{Limit: 500, Offset: 40}, maxPageSize, 40},
		{"negative offset", Page{Limit: 5, Offset: -3}, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := tt.page.bounds()
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestWhereBuilder_NumbersPlaceholders(t *testing.T) {
	var where whereBuilder
	assert.Empty(t, where.sql())

	where.add("employee_id=$%d", "emp-1")
	where.add("(LOWER(name) LIKE $%[1]d OR LOWER(email) LIKE $%[1]d)", likePattern("  Ada "))

	assert.Equal(t, " WHERE employee_id=$1 AND (LOWER(name) LIKE $2 OR LOWER(email) LIKE $2)", where.sql())
	assert.Equal(t, []any{"emp-1", "%ada%"}, where.args)
}

func TestWhereBuilder_Paged(t *testing.T) {
	var where whereBuilder
	where.add("status=$%d", "Pending")

	list, total := where.paged("SELECT id FROM tasks", "SELECT COUNT(*) FROM tasks", "created_at DESC", Page{Limit: 10, Offset: 20})
	assert.Equal(t, "SELECT id FROM tasks WHERE status=$1 ORDER BY created_at DESC LIMIT 10 OFFSET 20", list)
	assert.Equal(t, "SELECT COUNT(*) FROM tasks WHERE status=$1", total)
}

func TestDigest_StableAndOpaque(t *testing.T) {
	a := digest("reset-token")
	assert.Equal(t, a, digest("reset-token"))
	assert.NotEqual(t, a, digest("reset-token2"))
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "reset")
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%\_%`, likePattern("_"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\\b%`, likePattern(`A\b`))
}
