package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderCV(t *testing.T) {
	years := 7
	data, err := RenderCV(CV{
		Prenom:          "Léa",
		Nom:             "Martin",
		Email:           "lea.martin@example.com",
		ExperienceYears: &years,
		Description:     "Consultante data, migrations et reprise de données.",
		Langues:         []string{"FR", "EN"},
		Formations:      []CVFormation{{Type: "Master", Libelle: "Informatique"}, {Type: "", Libelle: ""}},
		Experiences:     []string{"Refonte du SI RH", ""},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderCV_EmptyProfile(t *testing.T) {
	data, err := RenderCV(CV{Prenom: "A", Nom: "B", English: true})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCVFileName(t *testing.T) {
	assert.Equal(t, "Léa_Martin_CV.pdf", CVFileName("Léa", "Martin"))
	assert.Equal(t, "a-b_c_CV.pdf", CVFileName("a/b", "c"))
}

func TestZip_DeduplicatesNames(t *testing.T) {
	data, err := Zip([]File{
		{Name: "Jean_Dupont_CV.pdf", Data: []byte("one")},
		{Name: "Jean_Dupont_CV.pdf", Data: []byte("two")},
		{Name: "Anne_Roy_CV.pdf", Data: []byte("three")},
	})
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Jean_Dupont_CV.pdf", "Jean_Dupont_CV (1).pdf", "Anne_Roy_CV.pdf"}, names)

	rc, err := r.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "two", string(body))
}

func TestMembersWorkbook(t *testing.T) {
	data, err := MembersWorkbook("Equipe Data", []MemberRow{
		{Nom: "Martin", Prenom: "Léa", Email: "lea@example.com", Grade: "Senior", Metier: "Data", Poste: "Consultant"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Equipe Data", "B1")
	require.NoError(t, err)
	assert.Equal(t, "PRÉNOM", header)

	email, err := f.GetCellValue("Equipe Data", "C2")
	require.NoError(t, err)
	assert.Equal(t, "lea@example.com", email)
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "Membres", sheetTitle("  "))
	assert.Equal(t, "Q1-Q2 - Data", sheetTitle("Q1/Q2 : Data"))
	assert.Len(t, []rune(sheetTitle("Équipe de consultants seniors en ingénierie")), 31)
}
