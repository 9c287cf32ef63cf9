package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberships_DropsEmptyAndDuplicates(t *testing.T) {
	rows := memberships("c1", []string{"p1", "", "p2", "p1"})
	assert.Equal(t, []CollectionMembership{
		{CollectionID: "c1", ProfileID: "p1"},
		{CollectionID: "c1", ProfileID: "p2"},
	}, rows)
	assert.Equal(t, []string{"p1", "p2"}, targetIDs(rows))
}

func TestActorRows(t *testing.T) {
	use := actorsUse("c1", []string{"u1"})
	update := actorsUpdate("c1", nil)

	assert.Equal(t, "collection_actors_use", use[0].table())
	assert.Equal(t, []any{"c1", "u1"}, use[0].values())
	assert.Empty(t, update)
	assert.Equal(t, []string{"collection_id", "user_id"}, CollectionActorUpdate{}.columns())
}

func TestWithOwner(t *testing.T) {
	m := CollectionMembership{CollectionID: "old", ProfileID: "p1"}
	moved := m.withOwner("new")

	assert.Equal(t, "new", moved.CollectionID)
	assert.Equal(t, "p1", moved.ProfileID)
	assert.Equal(t, "old", m.CollectionID)
}

func TestCrossMemberships(t *testing.T) {
	pairs := crossMemberships([]string{"c1", "c2", "c1", ""}, []string{"p1", "p2", "p1"})

	assert.Equal(t, []CollectionMembership{
		{CollectionID: "c1", ProfileID: "p1"},
		{CollectionID: "c1", ProfileID: "p2"},
		{CollectionID: "c2", ProfileID: "p1"},
		{CollectionID: "c2", ProfileID: "p2"},
	}, pairs)
}

func TestCrossMemberships_Empty(t *testing.T) {
	assert.Empty(t, crossMemberships([]string{"c1"}, nil))
	assert.Empty(t, crossMemberships(nil, []string{"p1"}))
}

func TestAddMembershipsSQL_SkipsExistingPairs(t *testing.T) {
	assert.Contains(t, addMembershipsSQL, "unnest($1::text[], $2::text[])")
	assert.True(t, strings.HasSuffix(addMembershipsSQL, "ON CONFLICT DO NOTHING"))
}
