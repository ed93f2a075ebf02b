package wiki

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	domainwiki "github.com/yungbote/cleanarch-backend/internal/domain/wiki"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

// GetWikiPagesQuery lists published pages unless IncludeDrafts is set.
type GetWikiPagesQuery struct {
	Category      string `form:"category" validate:"max=100"`
	IncludeDrafts bool   `form:"includeDrafts"`
	Limit         int    `form:"limit" validate:"gte=0"`
}

type GetWikiPageByIDQuery struct {
	ID uuid.UUID
}

type GetWikiPageBySlugQuery struct {
	Slug string `validate:"notblank"`
}

type GetWikiPageHistoryQuery struct {
	ID uuid.UUID
}

type SearchWikiPagesQuery struct {
	SearchTerm string `form:"searchTerm" json:"searchTerm" validate:"notblank,max=200"`
	Limit      int    `form:"limit" json:"limit" validate:"gte=0"`
}

type GetWikiPagesByEntityQuery struct {
	EntityType string `validate:"notblank"`
	EntityID   uuid.UUID
}

func listItems(pages []*types.WikiPage) []WikiPageListItem {
	return lo.Map(pages, func(p *types.WikiPage, _ int) WikiPageListItem { return toListItem(p) })
}

func (h handlers) list(ctx context.Context, q GetWikiPagesQuery) ([]WikiPageListItem, error) {
	found, err := h.d.Repos.WikiPages.Search(dbctx.New(ctx), repos.WikiPageFilter{
		Category:      q.Category,
		PublishedOnly: !q.IncludeDrafts,
		Limit:         features.Page(q.Limit, 100, 500),
	})
	if err != nil {
		return nil, features.Read("wiki.list", err)
	}
	return listItems(found), nil
}

func (h handlers) getByID(ctx context.Context, q GetWikiPageByIDQuery) (WikiPageDTO, error) {
	const op = "wiki.get"
	page, err := h.d.Repos.WikiPages.GetWithVersions(dbctx.New(ctx), q.ID)
	if err != nil {
		return WikiPageDTO{}, features.Read(op, err)
	}
	if page == nil {
		return WikiPageDTO{}, features.NotFound(op, "WikiPage", q.ID)
	}
	return toDTO(page), nil
}

func (h handlers) getBySlug(ctx context.Context, q GetWikiPageBySlugQuery) (WikiPageDTO, error) {
	const op = "wiki.get_by_slug"
	dbc := dbctx.New(ctx)
	page, err := h.d.Repos.WikiPages.GetBySlug(dbc, q.Slug)
	if err != nil {
		return WikiPageDTO{}, features.Read(op, err)
	}
	if page == nil {
		return WikiPageDTO{}, domainagg.NotFound(op, "WikiPage with slug '"+q.Slug+"' not found")
	}
	if page, err = h.d.Repos.WikiPages.GetWithVersions(dbc, page.ID); err != nil {
		return WikiPageDTO{}, features.Read(op, err)
	}
	return toDTO(page), nil
}

func (h handlers) history(ctx context.Context, q GetWikiPageHistoryQuery) ([]WikiPageVersionDTO, error) {
	const op = "wiki.history"
	dbc := dbctx.New(ctx)
	page, err := h.d.Repos.WikiPages.GetByID(dbc, q.ID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	if page == nil {
		return nil, features.NotFound(op, "WikiPage", q.ID)
	}
	versions, err := h.d.Repos.WikiPages.ListVersions(dbc, q.ID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return lo.Map(versions, func(v *types.WikiPageVersion, _ int) WikiPageVersionDTO { return toVersionDTO(v) }), nil
}

func (h handlers) search(ctx context.Context, q SearchWikiPagesQuery) ([]WikiPageListItem, error) {
	found, err := h.d.Repos.WikiPages.Search(dbctx.New(ctx), repos.WikiPageFilter{
		SearchTerm:    q.SearchTerm,
		PublishedOnly: true,
		Limit:         features.Page(q.Limit, 50, 200),
	})
	if err != nil {
		return nil, features.Read("wiki.search", err)
	}
	return listItems(found), nil
}

func (h handlers) listByEntity(ctx context.Context, q GetWikiPagesByEntityQuery) ([]WikiPageListItem, error) {
	entityType, err := domainwiki.ParseEntityType(q.EntityType)
	if err != nil {
		return nil, err
	}
	found, err := h.d.Repos.WikiPages.ListByEntity(dbctx.New(ctx), entityType, q.EntityID)
	if err != nil {
		return nil, features.Read("wiki.list_by_entity", err)
	}
	return listItems(found), nil
}
