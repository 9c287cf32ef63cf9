package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// CVFormation is one diploma or training line.
type CVFormation struct {
	Type    string
	Libelle string
}

// CV is the renderable content of one collaborator's CV.
type CV struct {
	Prenom          string
	Nom             string
	Email           string
	English         bool
	ExperienceYears *int
	Description     string
	Grade           string
	Metier          string
	Poste           string
	Langues         []string
	Formations      []CVFormation
	Experiences     []string
}

type cvLabels struct {
	experience  string
	description string
	langues     string
	formations  string
	experiences string
	grade       string
	metier      string
	poste       string
}

var (
	labelsFR = cvLabels{
		experience:  "Années d'expérience",
		description: "Description",
		langues:     "Langues",
		formations:  "Formations",
		experiences: "Expériences significatives",
		grade:       "Grade",
		metier:      "Métier",
		poste:       "Poste",
	}
	labelsEN = cvLabels{
		experience:  "Years of experience",
		description: "Summary",
		langues:     "Languages",
		formations:  "Education",
		experiences: "Key experience",
		grade:       "Grade",
		metier:      "Field",
		poste:       "Position",
	}
)

// CVFileName is the archive entry name for a CV.
func CVFileName(prenom, nom string) string {
	clean := strings.NewReplacer("/", "-", "\\", "-", "..", ".")
	return fmt.Sprintf("%s_%s_CV.pdf", clean.Replace(prenom), clean.Replace(nom))
}

// RenderCV draws a single-column A4 CV.
func RenderCV(cv CV) ([]byte, error) {
	labels := labelsFR
	if cv.English {
		labels = labelsEN
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetTitle(cv.Prenom+" "+cv.Nom, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 58, 95)
	pdf.CellFormat(0, 10, tr(cv.Prenom+" "+cv.Nom), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, 6, tr("Email: "+cv.Email), "", 1, "L", false, 0, "")

	for _, line := range []struct{ label, value string }{
		{labels.poste, cv.Poste},
		{labels.grade, cv.Grade},
		{labels.metier, cv.Metier},
	} {
		if line.value != "" {
			pdf.CellFormat(0, 6, tr(line.label+": "+line.value), "", 1, "L", false, 0, "")
		}
	}
	if cv.ExperienceYears != nil && *cv.ExperienceYears > 0 {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: %d", labels.experience, *cv.ExperienceYears)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section := func(title string) {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(30, 58, 95)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
	}

	if d := strings.TrimSpace(cv.Description); d != "" {
		section(labels.description)
		pdf.MultiCell(0, 5.5, tr(d), "", "L", false)
	}

	if len(cv.Langues) > 0 {
		section(labels.langues)
		pdf.MultiCell(0, 5.5, strings.Join(cv.Langues, ", "), "", "L", false)
	}

	var formations []CVFormation
	for _, f := range cv.Formations {
		if strings.TrimSpace(f.Libelle) != "" {
			formations = append(formations, f)
		}
	}
	if len(formations) > 0 {
		section(labels.formations)
		for _, f := range formations {
			line := f.Libelle
			if f.Type != "" {
				line = f.Type + ": " + f.Libelle
			}
			pdf.MultiCell(0, 5.5, tr("- "+line), "", "L", false)
		}
	}

	var experiences []string
	for _, e := range cv.Experiences {
		if strings.TrimSpace(e) != "" {
			experiences = append(experiences, e)
		}
	}
	if len(experiences) > 0 {
		section(labels.experiences)
		for _, e := range experiences {
			pdf.MultiCell(0, 5.5, tr("- "+e), "", "L", false)
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render CV %s %s: %w", cv.Prenom, cv.Nom, err)
	}
	return buf.Bytes(), nil
}
