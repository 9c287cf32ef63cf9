package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-cv-backend/internal/domain"
)

func TestCollectionWhere_Empty(t *testing.T) {
	where, args := collectionWhere(domain.CollectionFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestCollectionWhere_AllPredicates(t *testing.T) {
	day := time.Date(2024, 3, 15, 17, 42, 0, 0, time.UTC)
	count := 3
	where, args := collectionWhere(domain.CollectionFilter{
		Search:       "Data",
		Nom:          "50%",
		Membre:       "user-1",
		UserCount:    &count,
		DateCreation: &day,
	})

	assert.True(t, strings.HasPrefix(where, "WHERE "))
	assert.Contains(t, where, "LOWER(c.collection_name) LIKE $1")
	assert.Contains(t, where, "LOWER(c.collection_name) LIKE $2")
	assert.Contains(t, where, "c.created_at >= $3 AND c.created_at < $4")
	assert.Contains(t, where, "p.user_id = $5")
	assert.Contains(t, where, ") >= $6")

	assert.Equal(t, []any{
		"%data%",
		`%50\%%`,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		"user-1",
		3,
	}, args)
}

func TestCollectionWhere_ZeroUserCountIgnored(t *testing.T) {
	zero := 0
	where, args := collectionWhere(domain.CollectionFilter{UserCount: &zero})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestCollectionListQuery_Paged(t *testing.T) {
	query, args := collectionListQuery(domain.CollectionFilter{Search: "a", Page: 3, Limit: 10})
	assert.Contains(t, query, "ORDER BY c.collection_name LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"%a%", 10, 20}, args)
}

func TestCollectionListQuery_Unpaged(t *testing.T) {
	query, args := collectionListQuery(domain.CollectionFilter{})
	assert.Equal(t, collectionSelect+"\nORDER BY c.collection_name", query)
	assert.NotContains(t, query, "\nWHERE ")
	assert.Empty(t, args)
}

func TestCollectionCountQuery_SharesPredicates(t *testing.T) {
	f := domain.CollectionFilter{Nom: "x", Membre: "u"}
	count, countArgs := collectionCountQuery(f)
	_, listArgs := collectionListQuery(f)

	assert.True(t, strings.HasPrefix(count, "SELECT COUNT(DISTINCT c.id) FROM collections c"))
	assert.Equal(t, listArgs, countArgs)
}
