package wiki

import (
	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

const (
	EventPageCreated        = "WikiPageCreated"
	EventPageVersionCreated = "WikiPageVersionCreated"
	EventPagePublished      = "WikiPagePublished"
)

type PageCreated struct {
	domainagg.EventMeta
	PageID uuid.UUID `json:"wikiPageId"`
	Title  string    `json:"title"`
	Slug   string    `json:"slug"`
}

func (PageCreated) EventName() string        { return EventPageCreated }
func (e PageCreated) AggregateID() uuid.UUID { return e.PageID }

type PageVersionCreated struct {
	domainagg.EventMeta
	PageID        uuid.UUID `json:"wikiPageId"`
	Title         string    `json:"title"`
	VersionNumber int       `json:"versionNumber"`
	AuthorID      uuid.UUID `json:"authorId"`
}

func (PageVersionCreated) EventName() string        { return EventPageVersionCreated }
func (e PageVersionCreated) AggregateID() uuid.UUID { return e.PageID }

type PagePublished struct {
	domainagg.EventMeta
	PageID uuid.UUID `json:"wikiPageId"`
	Title  string    `json:"title"`
}

func (PagePublished) EventName() string        { return EventPagePublished }
func (e PagePublished) AggregateID() uuid.UUID { return e.PageID }
