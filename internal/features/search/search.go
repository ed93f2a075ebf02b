package search

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

const (
	defaultPerType   = 5
	maxPerType       = 50
	maxSnippetLength = 200
)

const (
	TypeProject      = "Project"
	TypeCapability   = "Capability"
	TypeBusinessRule = "BusinessRule"
	TypeWikiPage     = "WikiPage"
)

type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ResultDTO struct {
	Projects      []ItemDTO `json:"projects"`
	Capabilities  []ItemDTO `json:"capabilities"`
	BusinessRules []ItemDTO `json:"businessRules"`
	WikiPages     []ItemDTO `json:"wikiPages"`
	TotalResults  int       `json:"totalResults"`
}

// GlobalSearchQuery searches every entity kind at once, capped per kind.
type GlobalSearchQuery struct {
	Q     string `form:"q" json:"q"`
	Limit int    `form:"limit" json:"limit" validate:"omitempty,min=1"`
}

func (q GlobalSearchQuery) Validate() []domainagg.FieldError {
	if strings.TrimSpace(q.Q) == "" {
		return []domainagg.FieldError{{Property: "q", Message: "Search term is required"}}
	}
	return nil
}

type handlers struct {
	d features.Deps
}

func (h handlers) search(ctx context.Context, q GlobalSearchQuery) (ResultDTO, error) {
	const op = "search.global"
	term := strings.TrimSpace(q.Q)
	limit := features.Page(q.Limit, defaultPerType, maxPerType)

	var out ResultDTO
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)

	g.Go(func() error {
		rows, err := h.d.Repos.Projects.Search(dbc, repos.ProjectFilter{SearchTerm: term})
		if err != nil {
			return err
		}
		out.Projects = lo.Map(lo.Slice(rows, 0, limit), func(p *types.Project, _ int) ItemDTO {
			return ItemDTO{ID: p.ID, Type: TypeProject, Title: p.Name, Description: p.Description, Code: p.Code.String(), Status: string(p.Status), CreatedAt: p.CreatedAt}
		})
		return nil
	})
	g.Go(func() error {
		rows, err := h.d.Repos.Capabilities.Search(dbc, repos.CapabilityFilter{SearchTerm: term, Limit: limit})
		if err != nil {
			return err
		}
		out.Capabilities = lo.Map(rows, func(c *types.Capability, _ int) ItemDTO {
			return ItemDTO{ID: c.ID, Type: TypeCapability, Title: c.Name, Description: c.Description, Status: string(c.Status), CreatedAt: c.CreatedAt}
		})
		return nil
	})
	g.Go(func() error {
		rows, err := h.d.Repos.BusinessRules.Search(dbc, repos.BusinessRuleFilter{SearchTerm: term, Limit: limit})
		if err != nil {
			return err
		}
		out.BusinessRules = lo.Map(rows, func(r *types.BusinessRule, _ int) ItemDTO {
			return ItemDTO{ID: r.ID, Type: TypeBusinessRule, Title: r.Name, Description: r.Description, Code: r.Code.String(), Status: string(r.Status), CreatedAt: r.CreatedAt}
		})
		return nil
	})
	g.Go(func() error {
		rows, err := h.d.Repos.WikiPages.Search(dbc, repos.WikiPageFilter{SearchTerm: term, Limit: limit})
		if err != nil {
			return err
		}
		out.WikiPages = lo.Map(rows, func(w *types.WikiPage, _ int) ItemDTO {
			status := "Draft"
			if w.IsPublished {
				status = "Published"
			}
			return ItemDTO{ID: w.ID, Type: TypeWikiPage, Title: w.Title, Description: snippet(w.Content), Code: w.Slug.String(), Status: status, CreatedAt: w.CreatedAt}
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return ResultDTO{}, features.Read(op, err)
	}
	out.TotalResults = len(out.Projects) + len(out.Capabilities) + len(out.BusinessRules) + len(out.WikiPages)
	return out, nil
}

func snippet(content string) string {
	r := []rune(content)
	if len(r) <= maxSnippetLength {
		return content
	}
	return string(r[:maxSnippetLength]) + "..."
}

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[GlobalSearchQuery, ResultDTO](m, h.search)
}
