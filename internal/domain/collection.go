package domain

import (
	"context"
	"encoding/json"
	"time"
)

// CollectionRelations are the three independent id sets of a collection.
type CollectionRelations struct {
	ProfileIDs     []string `json:"collectionProfils"`
	ActorsToUse    []string `json:"actorsToUse"`
	ActorsToUpdate []string `json:"actorsToUpdate"`
}

type Collection struct {
	ID        string    `json:"id"`
	Name      string    `json:"collectionName"`
	CreatorID *string   `json:"creator"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CollectionSummary is a list row: creator names and the member count.
type CollectionSummary struct {
	Collection
	CreatorPrenom *string `json:"creatorPrenom"`
	CreatorNom    *string `json:"creatorNom"`
	ProfileCount  int64   `json:"profile_count"`
}

// CollectionMember is a populated membership row.
type CollectionMember struct {
	ProfileID  string      `json:"id"`
	User       UserSummary `json:"user"`
	CVLanguage CVLanguage  `json:"cvLanguage"`
	Grade      *string     `json:"grade"`
	Metier     *string     `json:"metier"`
	Poste      *string     `json:"poste"`
}

// CollectionDetail is a single collection with its relation sets, either as
// bare ids or populated with the referenced rows.
type CollectionDetail struct {
	Collection
	CreatorPrenom *string
	CreatorNom    *string
	Populated     bool

	Relations CollectionRelations

	Members      []CollectionMember
	UseActors    []UserSummary
	UpdateActors []UserSummary
}

func (d CollectionDetail) MarshalJSON() ([]byte, error) {
	type head struct {
		Collection
		CreatorPrenom *string `json:"creatorPrenom"`
		CreatorNom    *string `json:"creatorNom"`
	}
	if d.Populated {
		return json.Marshal(struct {
			head
			Members      []CollectionMember `json:"collectionProfils"`
			UseActors    []UserSummary      `json:"actorsToUse"`
			UpdateActors []UserSummary      `json:"actorsToUpdate"`
		}{
			head:         head{d.Collection, d.CreatorPrenom, d.CreatorNom},
			Members:      nonNil(d.Members),
			UseActors:    nonNil(d.UseActors),
			UpdateActors: nonNil(d.UpdateActors),
		})
	}
	return json.Marshal(struct {
		head
		CollectionRelations
	}{
		head: head{d.Collection, d.CreatorPrenom, d.CreatorNom},
		CollectionRelations: CollectionRelations{
			ProfileIDs:     nonNil(d.Relations.ProfileIDs),
			ActorsToUse:    nonNil(d.Relations.ActorsToUse),
			ActorsToUpdate: nonNil(d.Relations.ActorsToUpdate),
		},
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type CollectionInput struct {
	Name string `json:"collectionName" binding:"required,max=255"`
	CollectionRelations
}

type CloneInput struct {
	OriginalID string `json:"originalId" binding:"required"`
	BaseName   string `json:"baseName" binding:"required,max=200"`
}

type BulkAttachInput struct {
	ProfileIDs []string `json:"profileIds" binding:"required,min=1"`
}

// CollectionFilter holds the list query. Limit <= 0 returns every row.
type CollectionFilter struct {
	Search       string
	Nom          string
	Membre       string
	UserCount    *int
	DateCreation *time.Time
	Page         int
	Limit        int
}

type CollectionPage struct {
	Collections []CollectionSummary `json:"collections"`
	Pagination  *Pagination         `json:"pagination,omitempty"`
}

type CollectionRepository interface {
	// Create inserts the collection and its relation sets in one transaction.
	Create(ctx context.Context, c *Collection, rel CollectionRelations) error
	// FindByID returns nil, nil when the collection does not exist.
	FindByID(ctx context.Context, id string, populate bool) (*CollectionDetail, error)
	FindByIDs(ctx context.Context, ids []string) ([]CollectionSummary, error)
	FindAll(ctx context.Context, f CollectionFilter) ([]CollectionSummary, int64, error)
	// Update renames the collection and fully replaces its relation sets.
	Update(ctx context.Context, id, name string, rel CollectionRelations) error
	Delete(ctx context.Context, id string) (bool, error)
	// Clone copies a collection and its relation sets under the next free "-copie(n)" name.
	Clone(ctx context.Context, originalID, baseName, creatorID string) (*CollectionDetail, error)
	// AddProfiles links every profile to every collection, skipping existing pairs.
	AddProfiles(ctx context.Context, collectionIDs, profileIDs []string) (int, error)
}

type CollectionUsecase interface {
	Create(ctx context.Context, actor Actor, in CollectionInput) (*CollectionDetail, error)
	Get(ctx context.Context, id string, populate bool) (*CollectionDetail, error)
	GetByIDs(ctx context.Context, ids []string) ([]CollectionSummary, error)
	List(ctx context.Context, f CollectionFilter) (*CollectionPage, error)
	Update(ctx context.Context, id string, in CollectionInput) (*CollectionDetail, error)
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, actor Actor, in CloneInput) (*CollectionDetail, error)
	AddProfiles(ctx context.Context, collectionIDs, profileIDs []string) (int, error)
	ExportMembers(ctx context.Context, id string) ([]byte, string, error)
}
