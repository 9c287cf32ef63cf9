package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDList_AcceptsStringsAndOptions(t *testing.T) {
	var q ProfileQuery
	body := `{"grade":["g1",{"value":"g2","label":"Senior"},{"_id":"g3"},""],"competences":[{"id":"c1"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &q))

	assert.Equal(t, IDList{"g1", "g2", "g3"}, q.Grades)
	assert.Equal(t, IDList{"c1"}, q.Competences)
	assert.True(t, q.WantsActive())
}

func TestIDList_RejectsScalars(t *testing.T) {
	var l IDList
	assert.Error(t, json.Unmarshal([]byte(`"g1"`), &l))
	assert.Error(t, json.Unmarshal([]byte(`[42]`), &l))
}

func TestProfileQuery_Archived(t *testing.T) {
	var q ProfileQuery
	require.NoError(t, json.Unmarshal([]byte(`{"active":false}`), &q))
	assert.False(t, q.WantsActive())
}
