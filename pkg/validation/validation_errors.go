package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to French labels
var FieldLabels = map[string]string{
	// Accounts
	"Prenom":    "Prénom",
	"Nom":       "Nom",
	"Email":     "Email",
	"Password":  "Mot de passe",
	"Pays":      "Pays",
	"Telephone": "Téléphone",

	// Profiles
	"CVLanguage":      "Langue du CV",
	"Description":     "Description",
	"ExperienceYears": "Années d'expérience",

	// Taxonomies
	"Name":   "Nom (FR)",
	"NameEn": "Nom (EN)",

	// Collections
	"OriginalID": "Collection d'origine",
	"BaseName":   "Nom de base",
	"ProfileIDs": "Profils",

	// Filters and mailing
	"Offset":           "Décalage",
	"Recipients":       "Destinataires",
	"SelectedProfiles": "Profils sélectionnés",
	"Users":            "Utilisateurs",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s : champ obligatoire", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s : %s caractères minimum", label, param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s : au moins %s élément(s)", label, param)
		}
		return fmt.Sprintf("%s : minimum %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s : %s caractères maximum", label, param)
		}
		return fmt.Sprintf("%s : maximum %s", label, param)
	case "email":
		return fmt.Sprintf("%s : format d'email invalide", label)
	case "oneof":
		return fmt.Sprintf("%s : doit être l'une des valeurs %s", label, strings.ReplaceAll(param, " ", ", "))
	case "valid_name":
		return fmt.Sprintf("%s : lettres, espaces et ponctuation simple (. ' -) uniquement", label)
	case "valid_phone":
		return fmt.Sprintf("%s : numéro de téléphone invalide (7 à 15 chiffres, + facultatif)", label)
	case "no_emoji":
		return fmt.Sprintf("%s : les emojis ne sont pas autorisés", label)
	case "cv_language":
		return fmt.Sprintf("%s : valeurs acceptées fr ou en", label)
	default:
		return fmt.Sprintf("%s : validation échouée (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
