package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLangues(t *testing.T) {
	l := DecodeLangues(`{"FR":true,"EN":true}`)
	assert.Equal(t, []string{"FR", "EN"}, l.Spoken())

	assert.Equal(t, Langues{}, DecodeLangues(`{not json`))
	assert.Equal(t, Langues{}, DecodeLangues("undefined"))
	assert.Empty(t, Langues{}.Spoken())
}

func TestDecodeFormations_FailsClosed(t *testing.T) {
	assert.Equal(t, DefaultFormations(), DecodeFormations(""))
	assert.Equal(t, DefaultFormations(), DecodeFormations("[{"))
	assert.Equal(t, DefaultFormations(), DecodeFormations("null"))

	got := DecodeFormations(`[{"type":"Master","libelle":"Informatique"}]`)
	assert.Equal(t, []Formation{{Type: "Master", Libelle: "Informatique"}}, got)
}

func TestDecodeExpSignificatives_KeepsUnknownKeys(t *testing.T) {
	got := DecodeExpSignificatives(`[{"description":"Migration SI","client":"ACME","annee":2021}]`)
	require.Len(t, got, 1)
	assert.Equal(t, "Migration SI", got[0].Description)
	assert.Contains(t, got[0].Extra, "client")

	encoded, err := EncodeDoc(got)
	require.NoError(t, err)

	var back []map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &back))
	assert.Equal(t, "ACME", back[0]["client"])
	assert.Equal(t, "Migration SI", back[0]["description"])
	assert.EqualValues(t, 2021, back[0]["annee"])
}

func TestDecodeExpSignificatives_Malformed(t *testing.T) {
	assert.Empty(t, DecodeExpSignificatives(`{"description":"x"}`))
	assert.NotNil(t, DecodeExpSignificatives("garbage"))
}

func TestCleanOptional(t *testing.T) {
	s := func(v string) *string { return &v }

	assert.Nil(t, CleanOptional(nil))
	assert.Nil(t, CleanOptional(s("null")))
	assert.Nil(t, CleanOptional(s("undefined")))
	assert.Nil(t, CleanOptional(s(" ")))
	assert.Equal(t, "abc", *CleanOptional(s("abc")))
}
