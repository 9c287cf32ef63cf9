package domain

import (
	"context"
	"time"
)

// TaxonomyKind names one of the bilingual reference tables.
type TaxonomyKind string

const (
	KindGrade               TaxonomyKind = "grade"
	KindMetier              TaxonomyKind = "metier"
	KindPoste               TaxonomyKind = "poste"
	KindCompetence          TaxonomyKind = "competence"
	KindExpertiseMetier     TaxonomyKind = "expertise-metier"
	KindExpertiseTechnique  TaxonomyKind = "expertise-technique"
	KindExpertiseLogicielle TaxonomyKind = "expertise-logicielle"
)

var TaxonomyKinds = []TaxonomyKind{
	KindGrade, KindMetier, KindPoste, KindCompetence,
	KindExpertiseMetier, KindExpertiseTechnique, KindExpertiseLogicielle,
}

func (k TaxonomyKind) Valid() bool {
	for _, known := range TaxonomyKinds {
		if k == known {
			return true
		}
	}
	return false
}

// SoftDelete reports whether deleting flips the active flag instead of removing the row.
func (k TaxonomyKind) SoftDelete() bool {
	return k != KindGrade && k != KindMetier
}

type Taxonomy struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NameEn    string    `json:"name_en"`
	Active    *bool     `json:"active,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TaxonomyInput struct {
	Name   string `json:"name" binding:"required,max=150"`
	NameEn string `json:"name_en" binding:"required,max=150"`
}

type NamePair struct {
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
}

// PosteRelations are the skill ids attached to a Poste.
type PosteRelations struct {
	Competences          []string `json:"competences"`
	ExpertiseMetiers     []string `json:"expertiseMetiers"`
	ExpertiseTechniques  []string `json:"expertiseTechniques"`
	ExpertiseLogicielles []string `json:"expertiseLogicielles"`
}

type Poste struct {
	Taxonomy
	PosteRelations
}

type PosteInput struct {
	TaxonomyInput
	PosteRelations
}

type TaxonomyRepository interface {
	Create(ctx context.Context, kind TaxonomyKind, t *Taxonomy) error
	FindAll(ctx context.Context, kind TaxonomyKind, search string) ([]Taxonomy, error)
	FindByID(ctx context.Context, kind TaxonomyKind, id string) (*Taxonomy, error)
	Update(ctx context.Context, kind TaxonomyKind, t *Taxonomy) error
	Delete(ctx context.Context, kind TaxonomyKind, id string) error
	Names(ctx context.Context, kind TaxonomyKind) ([]NamePair, error)
}

type PosteRepository interface {
	CreateWithRelations(ctx context.Context, p *Poste) error
	UpdateWithRelations(ctx context.Context, p *Poste) error
	FindByID(ctx context.Context, id string) (*Poste, error)
}

type TaxonomyUsecase interface {
	Create(ctx context.Context, kind TaxonomyKind, in TaxonomyInput) (*Taxonomy, error)
	List(ctx context.Context, kind TaxonomyKind, search string) ([]Taxonomy, error)
	Get(ctx context.Context, kind TaxonomyKind, id string) (*Taxonomy, error)
	Update(ctx context.Context, kind TaxonomyKind, id string, in TaxonomyInput) (*Taxonomy, error)
	Delete(ctx context.Context, kind TaxonomyKind, id string) error
	GradeNames(ctx context.Context) ([]NamePair, error)
}

type PosteUsecase interface {
	Create(ctx context.Context, in PosteInput) (*Poste, error)
	Update(ctx context.Context, id string, in PosteInput) (*Poste, error)
	Get(ctx context.Context, id string) (*Poste, error)
}
