package wiki

import (
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
)

type WikiPageDTO struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	Category        string     `json:"category"`
	AuthorID        uuid.UUID  `json:"authorId"`
	IsPublished     bool       `json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	ViewCount       int        `json:"viewCount"`
	EntityType      string     `json:"entityType"`
	RelatedEntityID *uuid.UUID `json:"relatedEntityId,omitempty"`
	Tags            []string   `json:"tags"`
	CurrentVersion  int        `json:"currentVersion"`
	CreatedAt       time.Time  `json:"createdAt"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	ModifiedAt      *time.Time `json:"modifiedAt,omitempty"`
	ModifiedBy      string     `json:"modifiedBy,omitempty"`
}

type WikiPageListItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"isPublished"`
	ViewCount   int       `json:"viewCount"`
	Tags        []string  `json:"tags"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WikiPageVersionDTO struct {
	ID            uuid.UUID `json:"id"`
	VersionNumber int       `json:"versionNumber"`
	Content       string    `json:"content"`
	ChangeSummary string    `json:"changeSummary"`
	AuthorID      uuid.UUID `json:"authorId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func tags(p *types.WikiPage) []string {
	out := make([]string, len(p.Tags))
	copy(out, p.Tags)
	return out
}

func toDTO(p *types.WikiPage) WikiPageDTO {
	return WikiPageDTO{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug.String(),
		Content:         p.Content,
		Category:        p.Category,
		AuthorID:        p.AuthorID,
		IsPublished:     p.IsPublished,
		PublishedAt:     p.PublishedAt,
		ViewCount:       p.ViewCount,
		EntityType:      string(p.EntityType),
		RelatedEntityID: p.RelatedEntityID,
		Tags:            tags(p),
		CurrentVersion:  p.LatestVersionNumber(),
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
		ModifiedAt:      p.ModifiedAt,
		ModifiedBy:      p.ModifiedBy,
	}
}

func toListItem(p *types.WikiPage) WikiPageListItem {
	updated := p.CreatedAt
	if p.ModifiedAt != nil {
		updated = *p.ModifiedAt
	}
	return WikiPageListItem{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug.String(),
		Category:    p.Category,
		IsPublished: p.IsPublished,
		ViewCount:   p.ViewCount,
		Tags:        tags(p),
		UpdatedAt:   updated,
	}
}

func toVersionDTO(v *types.WikiPageVersion) WikiPageVersionDTO {
	return WikiPageVersionDTO{
		ID:            v.ID,
		VersionNumber: v.VersionNumber,
		Content:       v.Content,
		ChangeSummary: v.ChangeSummary,
		AuthorID:      v.AuthorID,
		CreatedAt:     v.CreatedAt,
	}
}
