package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cv-backend/internal/domain"
)

func TestTaxonomyTables_CoverEveryKind(t *testing.T) {
	for _, kind := range domain.TaxonomyKinds {
		table, err := tableFor(kind)
		require.NoError(t, err, kind)
		assert.NotEmpty(t, table.name, kind)
	}
}

func TestTableFor_UnknownKind(t *testing.T) {
	_, err := tableFor("department")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaxonomyColumns(t *testing.T) {
	grades := taxonomyTables[domain.KindGrade]
	assert.Contains(t, grades.columns(domain.KindGrade), "NULL::boolean AS active")

	competences := taxonomyTables[domain.KindCompetence]
	assert.NotContains(t, competences.columns(domain.KindCompetence), "NULL")
}

func TestTaxonomyTables_HardDeletedKindsDetachProfiles(t *testing.T) {
	assert.Equal(t, "grade_id", taxonomyTables[domain.KindGrade].profileColumn)
	assert.Equal(t, "metier_id", taxonomyTables[domain.KindMetier].profileColumn)
	assert.Equal(t, []linkTable{posteExpertiseMetiers}, taxonomyTables[domain.KindExpertiseMetier].links)
}

func TestFilterData(t *testing.T) {
	assert.Equal(t, "{}", filterData(nil))
	assert.Equal(t, "{}", filterData([]byte("null")))
	assert.Equal(t, `{"grade":["g1"]}`, filterData([]byte(`{"grade":["g1"]}`)))
}

func TestNamedRef(t *testing.T) {
	id, name := "g1", "Senior"
	assert.Nil(t, namedRef(nil, &name, nil))
	assert.Nil(t, namedRef(&id, nil, nil))
	assert.Equal(t, &domain.NamedRef{ID: "g1", Name: "Senior"}, namedRef(&id, &name, nil))
}

func TestEncodeDocs_Defaults(t *testing.T) {
	docs, err := encodeDocs(&domain.Profile{})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"","libelle":""}]`, docs.formations)
	assert.JSONEq(t, `[]`, docs.exp)
	assert.JSONEq(t, `[]`, docs.expEn)
}
