package wiki

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	domainwiki "github.com/yungbote/cleanarch-backend/internal/domain/wiki"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type CreateWikiPageCommand struct {
	Title           string     `json:"title" validate:"notblank,max=200"`
	Content         string     `json:"content" validate:"notblank"`
	Category        string     `json:"category" validate:"notblank,max=100"`
	Tags            []string   `json:"tags" validate:"max=10,dive,notblank,max=50"`
	EntityType      string     `json:"entityType"`
	RelatedEntityID *uuid.UUID `json:"relatedEntityId"`
	Publish         bool       `json:"publish"`
}

func (c CreateWikiPageCommand) Validate() []domainagg.FieldError {
	if c.EntityType != "" && c.EntityType != string(domainwiki.EntityTypeGeneral) && c.RelatedEntityID == nil {
		return []domainagg.FieldError{{Property: "relatedEntityId", Message: "'relatedEntityId' is required when 'entityType' is set."}}
	}
	return nil
}

type UpdateWikiPageCommand struct {
	ID            uuid.UUID `json:"-"`
	Content       string    `json:"content" validate:"notblank"`
	ChangeSummary string    `json:"changeSummary" validate:"notblank,max=500"`
}

type UpdateWikiPageTitleCommand struct {
	ID    uuid.UUID `json:"-"`
	Title string    `json:"title" validate:"notblank,max=200"`
}

type PublishWikiPageCommand struct {
	ID uuid.UUID `json:"-"`
}

type UnpublishWikiPageCommand struct {
	ID uuid.UUID `json:"-"`
}

type AddWikiPageTagCommand struct {
	ID  uuid.UUID `json:"-"`
	Tag string    `json:"tag" validate:"notblank,max=50"`
}

type RemoveWikiPageTagCommand struct {
	ID  uuid.UUID `json:"-"`
	Tag string    `json:"tag" validate:"notblank"`
}

type LinkWikiPageCommand struct {
	ID         uuid.UUID `json:"-"`
	EntityType string    `json:"entityType" validate:"notblank"`
	EntityID   uuid.UUID `json:"entityId" validate:"required"`
}

type IncrementWikiPageViewCommand struct {
	ID uuid.UUID `json:"-"`
}

type DeleteWikiPageCommand struct {
	ID uuid.UUID `json:"-"`
}

type handlers struct {
	d features.Deps
}

// author is the authenticated caller; wiki writes are never anonymous.
func author(ctx context.Context, op string) (uuid.UUID, error) {
	rd, err := features.CurrentUser(ctx, op)
	if err != nil {
		return uuid.Nil, err
	}
	return rd.UserID, nil
}

func slugTaken(slug string) string {
	return fmt.Sprintf("A wiki page with slug '%s' already exists", slug)
}

func (h handlers) create(ctx context.Context, cmd CreateWikiPageCommand) (uuid.UUID, error) {
	const op = "wiki.create"
	authorID, err := author(ctx, op)
	if err != nil {
		return uuid.Nil, err
	}
	page, err := domainwiki.NewPage(cmd.Title, cmd.Content, cmd.Category, authorID)
	if err != nil {
		return uuid.Nil, err
	}
	for _, tag := range cmd.Tags {
		if err := page.AddTag(tag); err != nil {
			return uuid.Nil, err
		}
	}
	if cmd.RelatedEntityID != nil {
		entityType := domainwiki.EntityTypeGeneral
		if cmd.EntityType != "" {
			if entityType, err = domainwiki.ParseEntityType(cmd.EntityType); err != nil {
				return uuid.Nil, err
			}
		}
		if err := page.LinkToEntity(entityType, *cmd.RelatedEntityID); err != nil {
			return uuid.Nil, err
		}
	}
	if cmd.Publish {
		page.Publish(h.d.Now())
	}

	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		exists, err := h.d.Repos.WikiPages.SlugExists(dbc, page.Slug.String())
		if err != nil {
			return err
		}
		if exists {
			return domainagg.Conflict(op, slugTaken(page.Slug.String()))
		}
		return h.d.Repos.WikiPages.Add(dbc, page)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return page.ID, nil
}

// mutate loads the page (with history when withVersions), applies fn and saves it.
func (h handlers) mutate(ctx context.Context, op string, id uuid.UUID, withVersions bool, fn func(dbc dbctx.Context, p *domainwiki.Page) error) (mediator.Unit, error) {
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		var (
			page *domainwiki.Page
			err  error
		)
		if withVersions {
			page, err = h.d.Repos.WikiPages.GetWithVersions(dbc, id)
		} else {
			page, err = h.d.Repos.WikiPages.GetByID(dbc, id)
		}
		if err != nil {
			return err
		}
		if page == nil {
			return features.NotFound(op, "WikiPage", id)
		}
		if err := fn(dbc, page); err != nil {
			return err
		}
		return h.d.Repos.WikiPages.Update(dbc, page)
	})
	return mediator.Unit{}, err
}

func (h handlers) update(ctx context.Context, cmd UpdateWikiPageCommand) (mediator.Unit, error) {
	const op = "wiki.update"
	authorID, err := author(ctx, op)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, op, cmd.ID, true, func(_ dbctx.Context, p *domainwiki.Page) error {
		_, err := p.Update(cmd.Content, cmd.ChangeSummary, authorID)
		return err
	})
}

func (h handlers) updateTitle(ctx context.Context, cmd UpdateWikiPageTitleCommand) (mediator.Unit, error) {
	const op = "wiki.update_title"
	return h.mutate(ctx, op, cmd.ID, false, func(dbc dbctx.Context, p *domainwiki.Page) error {
		if err := p.UpdateTitle(cmd.Title); err != nil {
			return err
		}
		other, err := h.d.Repos.WikiPages.GetBySlug(dbc, p.Slug.String())
		if err != nil {
			return err
		}
		if other != nil && other.ID != p.ID {
			return domainagg.Conflict(op, slugTaken(p.Slug.String()))
		}
		return nil
	})
}

func (h handlers) publish(ctx context.Context, cmd PublishWikiPageCommand) (mediator.Unit, error) {
	now := h.d.Now()
	return h.mutate(ctx, "wiki.publish", cmd.ID, false, func(_ dbctx.Context, p *domainwiki.Page) error {
		p.Publish(now)
		return nil
	})
}

func (h handlers) unpublish(ctx context.Context, cmd UnpublishWikiPageCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "wiki.unpublish", cmd.ID, false, func(_ dbctx.Context, p *domainwiki.Page) error {
		p.Unpublish()
		return nil
	})
}

func (h handlers) addTag(ctx context.Context, cmd AddWikiPageTagCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "wiki.add_tag", cmd.ID, false, func(_ dbctx.Context, p *domainwiki.Page) error {
		return p.AddTag(cmd.Tag)
	})
}

func (h handlers) removeTag(ctx context.Context, cmd RemoveWikiPageTagCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "wiki.remove_tag", cmd.ID, false, func(_ dbctx.Context, p *domainwiki.Page) error {
		return p.RemoveTag(cmd.Tag)
	})
}

func (h handlers) link(ctx context.Context, cmd LinkWikiPageCommand) (mediator.Unit, error) {
	entityType, err := domainwiki.ParseEntityType(cmd.EntityType)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "wiki.link", cmd.ID, false, func(_ dbctx.Context, p *domainwiki.Page) error {
		return p.LinkToEntity(entityType, cmd.EntityID)
	})
}

func (h handlers) view(ctx context.Context, cmd IncrementWikiPageViewCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "wiki.view", cmd.ID, false, func(_ dbctx.Context, p *domainwiki.Page) error {
		p.IncrementViewCount()
		return nil
	})
}

func (h handlers) delete(ctx context.Context, cmd DeleteWikiPageCommand) (mediator.Unit, error) {
	const op = "wiki.delete"
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		page, err := h.d.Repos.WikiPages.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if page == nil {
			return features.NotFound(op, "WikiPage", cmd.ID)
		}
		return h.d.Repos.WikiPages.Delete(dbc, page)
	})
	return mediator.Unit{}, err
}
