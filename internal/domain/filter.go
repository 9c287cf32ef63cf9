package domain

import (
	"context"
	"encoding/json"
	"time"
)

// ProfilePageSize is the fixed page size of filter results.
const ProfilePageSize = 20

type SavedFilter struct {
	ID        string          `json:"id"`
	Name      string          `json:"filterName"`
	Data      json.RawMessage `json:"filterData"`
	CreatorID string          `json:"creator"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type SavedFilterInput struct {
	Name string          `json:"filterName" binding:"required,max=255"`
	Data json.RawMessage `json:"filterData"`
}

// IDList accepts either plain id strings or select-option objects
// ({"value": id} or {"id": id}) as sent by the front-end pickers.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(IDList, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var opt struct {
			Value string `json:"value"`
			ID    string `json:"id"`
			OID   string `json:"_id"`
		}
		if err := json.Unmarshal(item, &opt); err != nil {
			return err
		}
		for _, v := range []string{opt.Value, opt.ID, opt.OID} {
			if v != "" {
				out = append(out, v)
				break
			}
		}
	}
	*l = out
	return nil
}

// ProfileQuery is the ad-hoc profile search run by POST /filter/apply.
type ProfileQuery struct {
	Grades               IDList `json:"grade"`
	Poste                string `json:"poste"`
	Competences          IDList `json:"competences"`
	ExpertiseMetiers     IDList `json:"expMetiers"`
	ExpertiseTechniques  IDList `json:"expTechniques"`
	ExpertiseLogicielles IDList `json:"expLogicielles"`
	Search               string `json:"search"`
	Active               *bool  `json:"active"`
	// Offset is a page index, not a row offset.
	Offset int `json:"offset" binding:"min=0"`
}

// WantsActive defaults to active profiles when the flag is omitted.
func (q ProfileQuery) WantsActive() bool {
	return q.Active == nil || *q.Active
}

type ProfileQueryResult struct {
	Profiles  []ProfileListItem `json:"profiles"`
	CountDocs int64             `json:"countDocs"`
}

type SavedFilterRepository interface {
	Create(ctx context.Context, f *SavedFilter) error
	// FindAll lists filters newest first. An empty creatorID lists everyone's.
	FindAll(ctx context.Context, creatorID string) ([]SavedFilter, error)
	FindByID(ctx context.Context, id string) (*SavedFilter, error)
	Update(ctx context.Context, f *SavedFilter) error
	Delete(ctx context.Context, id string) error
}

type FilterUsecase interface {
	Create(ctx context.Context, actor Actor, in SavedFilterInput) (*SavedFilter, error)
	List(ctx context.Context, actor Actor) ([]SavedFilter, error)
	Get(ctx context.Context, actor Actor, id string) (*SavedFilter, error)
	Update(ctx context.Context, actor Actor, id string, in SavedFilterInput) (*SavedFilter, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Apply(ctx context.Context, q ProfileQuery) (*ProfileQueryResult, error)
}
