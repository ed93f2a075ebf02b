package wiki

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

const (
	MaxTitleLength    = 200
	MaxCategoryLength = 100
	MaxSummaryLength  = 500
	MaxTags           = 10
	MaxTagLength      = 50
)

type EntityType string

const (
	EntityTypeGeneral     EntityType = "General"
	EntityTypeProject     EntityType = "Project"
	EntityTypeApplication EntityType = "Application"
	EntityTypeCapability  EntityType = "Capability"
)

var EntityTypes = []EntityType{EntityTypeGeneral, EntityTypeProject, EntityTypeApplication, EntityTypeCapability}

func ParseEntityType(raw string) (EntityType, error) {
	raw = strings.TrimSpace(raw)
	for _, t := range EntityTypes {
		if strings.EqualFold(string(t), raw) {
			return t, nil
		}
	}
	return "", domainagg.Validationf("wiki.entity_type", "Invalid entity type '%s'", raw)
}

// Page is a wiki page with an append-only version history. Content always
// mirrors the latest version.
type Page struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string                      `gorm:"size:200;not null" json:"title"`
	Slug            valueobject.Slug            `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Content         string                      `gorm:"type:text;not null" json:"content"`
	Category        string                      `gorm:"size:100;not null;index" json:"category"`
	AuthorID        uuid.UUID                   `gorm:"type:uuid;not null" json:"authorId"`
	IsPublished     bool                        `gorm:"not null;default:false" json:"isPublished"`
	PublishedAt     *time.Time                  `json:"publishedAt,omitempty"`
	ViewCount       int                         `gorm:"not null;default:0" json:"viewCount"`
	EntityType      EntityType                  `gorm:"size:20;not null" json:"entityType"`
	RelatedEntityID *uuid.UUID                  `gorm:"type:uuid;index" json:"relatedEntityId,omitempty"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	Versions        []*Version                  `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"versions,omitempty"`

	domainagg.Audit         `gorm:"embedded"`
	domainagg.EventRecorder `gorm:"-" json:"-"`
}

func (Page) TableName() string { return "wiki_pages" }

// Version is one immutable snapshot of a page's content.
type Version struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PageID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wiki_page_version" json:"pageId"`
	VersionNumber int       `gorm:"not null;uniqueIndex:idx_wiki_page_version" json:"versionNumber"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ChangeSummary string    `gorm:"size:500;not null" json:"changeSummary"`
	AuthorID      uuid.UUID `gorm:"type:uuid;not null" json:"authorId"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
}

func (Version) TableName() string { return "wiki_page_versions" }

func NewPage(title, content, category string, authorID uuid.UUID) (*Page, error) {
	const op = "wiki.create"
	title, err := domainagg.RequireText(op, "Wiki page title", title, MaxTitleLength)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, domainagg.Validation(op, "Wiki page content cannot be empty")
	}
	category, err = domainagg.RequireText(op, "Wiki page category", category, MaxCategoryLength)
	if err != nil {
		return nil, err
	}
	if err := domainagg.RequireID(op, "Author ID", authorID); err != nil {
		return nil, err
	}
	slug, err := valueobject.NewSlug(title)
	if err != nil {
		return nil, err
	}

	p := &Page{
		ID:         uuid.New(),
		Title:      title,
		Slug:       slug,
		Content:    content,
		Category:   category,
		AuthorID:   authorID,
		EntityType: EntityTypeGeneral,
		Tags:       datatypes.JSONSlice[string]{},
	}
	p.appendVersion(content, "Initial version", authorID)
	p.Raise(PageCreated{EventMeta: domainagg.NewEventMeta(), PageID: p.ID, Title: title, Slug: slug.String()})
	return p, nil
}

func (p *Page) appendVersion(content, summary string, authorID uuid.UUID) *Version {
	v := &Version{
		ID:            uuid.New(),
		PageID:        p.ID,
		VersionNumber: p.LatestVersionNumber() + 1,
		Content:       content,
		ChangeSummary: summary,
		AuthorID:      authorID,
		CreatedAt:     time.Now().UTC(),
	}
	p.Versions = append(p.Versions, v)
	return v
}

// LatestVersionNumber is the highest version number present, zero for none.
func (p *Page) LatestVersionNumber() int {
	latest := 0
	for _, v := range p.Versions {
		if v.VersionNumber > latest {
			latest = v.VersionNumber
		}
	}
	return latest
}

// Update records a new version; earlier versions are never touched.
func (p *Page) Update(content, changeSummary string, authorID uuid.UUID) (*Version, error) {
	const op = "wiki.update"
	if strings.TrimSpace(content) == "" {
		return nil, domainagg.Validation(op, "Wiki page content cannot be empty")
	}
	changeSummary, err := domainagg.RequireText(op, "Change summary", changeSummary, MaxSummaryLength)
	if err != nil {
		return nil, err
	}
	if err := domainagg.RequireID(op, "Author ID", authorID); err != nil {
		return nil, err
	}
	p.Content = content
	v := p.appendVersion(content, changeSummary, authorID)
	p.Raise(PageVersionCreated{EventMeta: domainagg.NewEventMeta(), PageID: p.ID, Title: p.Title, VersionNumber: v.VersionNumber, AuthorID: authorID})
	return v, nil
}

func (p *Page) UpdateTitle(title string) error {
	title, err := domainagg.RequireText("wiki.update_title", "Wiki page title", title, MaxTitleLength)
	if err != nil {
		return err
	}
	slug, err := valueobject.NewSlug(title)
	if err != nil {
		return err
	}
	p.Title = title
	p.Slug = slug
	return nil
}

// Publish is idempotent: publishing a published page changes nothing.
func (p *Page) Publish(now time.Time) {
	if p.IsPublished {
		return
	}
	now = now.UTC()
	p.IsPublished = true
	p.PublishedAt = &now
	p.Raise(PagePublished{EventMeta: domainagg.NewEventMeta(), PageID: p.ID, Title: p.Title})
}

func (p *Page) Unpublish() {
	p.IsPublished = false
}

func (p *Page) AddTag(tag string) error {
	const op = "wiki.add_tag"
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return domainagg.Validation(op, "Tag cannot be empty")
	}
	if len(tag) > MaxTagLength {
		return domainagg.Validationf(op, "Tag cannot exceed %d characters", MaxTagLength)
	}
	if slices.Contains(p.Tags, tag) {
		return domainagg.Validation(op, "Tag already exists")
	}
	if len(p.Tags) >= MaxTags {
		return domainagg.Validationf(op, "Cannot add more than %d tags", MaxTags)
	}
	p.Tags = append(p.Tags, tag)
	return nil
}

func (p *Page) RemoveTag(tag string) error {
	tag = strings.ToLower(strings.TrimSpace(tag))
	idx := slices.Index(p.Tags, tag)
	if idx < 0 {
		return domainagg.Validation("wiki.remove_tag", "Tag not found")
	}
	p.Tags = slices.Delete(p.Tags, idx, idx+1)
	return nil
}

func (p *Page) LinkToEntity(entityType EntityType, entityID uuid.UUID) error {
	if err := domainagg.RequireID("wiki.link", "Entity ID", entityID); err != nil {
		return err
	}
	p.EntityType = entityType
	p.RelatedEntityID = &entityID
	return nil
}

func (p *Page) IncrementViewCount() {
	p.ViewCount++
}

// Version returns the version with the given number, or nil.
func (p *Page) Version(number int) *Version {
	for _, v := range p.Versions {
		if v.VersionNumber == number {
			return v
		}
	}
	return nil
}
