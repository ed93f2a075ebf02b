package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

const (
	recentProjectsLimit  = 5
	topCapabilitiesLimit = 10
)

type ProjectsByStatus struct {
	Planning   int64 `json:"planning"`
	InProgress int64 `json:"inProgress"`
	OnHold     int64 `json:"onHold"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type RecentProject struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Code              string     `json:"code"`
	Status            string     `json:"status"`
	ApplicationsCount int        `json:"applicationsCount"`
	CapabilitiesCount int        `json:"capabilitiesCount"`
	StartDate         time.Time  `json:"startDate"`
	PlannedEndDate    *time.Time `json:"plannedEndDate,omitempty"`
}

type TopCapability struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	ApplicationName    string    `json:"applicationName"`
	BusinessRulesCount int64     `json:"businessRulesCount"`
	Status             string    `json:"status"`
	Priority           int       `json:"priority"`
}

type StatsDTO struct {
	TotalProjects      int64            `json:"totalProjects"`
	ActiveProjects     int64            `json:"activeProjects"`
	CompletedProjects  int64            `json:"completedProjects"`
	TotalApplications  int64            `json:"totalApplications"`
	TotalCapabilities  int64            `json:"totalCapabilities"`
	TotalBusinessRules int64            `json:"totalBusinessRules"`
	TotalWikiPages     int64            `json:"totalWikiPages"`
	PublishedWikiPages int64            `json:"publishedWikiPages"`
	ProjectsByStatus   ProjectsByStatus `json:"projectsByStatus"`
	RecentProjects     []RecentProject  `json:"recentProjects"`
	TopCapabilities    []TopCapability  `json:"topCapabilities"`
}

type SummaryDTO struct {
	TotalProjects      int64 `json:"totalProjects"`
	ActiveProjects     int64 `json:"activeProjects"`
	TotalCapabilities  int64 `json:"totalCapabilities"`
	TotalBusinessRules int64 `json:"totalBusinessRules"`
	PublishedWikiPages int64 `json:"publishedWikiPages"`
}

type GetDashboardStatsQuery struct{}

type GetDashboardSummaryQuery struct{}

type handlers struct {
	d features.Deps
}

// Stats runs every aggregate query concurrently; the first failure cancels the rest.
func Stats(ctx context.Context, set repos.Set) (StatsDTO, error) {
	var (
		out      StatsDTO
		byStatus map[types.ProjectStatus]int64
		recent   []*types.Project
		top      []repos.CapabilityRuleCount
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)

	g.Go(func() (err error) {
		byStatus, err = set.Projects.CountByStatus(dbc)
		return err
	})
	g.Go(func() (err error) {
		out.TotalApplications, err = set.Applications.Count(dbc)
		return err
	})
	g.Go(func() (err error) {
		out.TotalCapabilities, err = set.Capabilities.Count(dbc)
		return err
	})
	g.Go(func() (err error) {
		out.TotalBusinessRules, err = set.BusinessRules.Count(dbc)
		return err
	})
	g.Go(func() (err error) {
		out.TotalWikiPages, err = set.WikiPages.Count(dbc)
		return err
	})
	g.Go(func() (err error) {
		out.PublishedWikiPages, err = set.WikiPages.CountPublished(dbc)
		return err
	})
	g.Go(func() (err error) {
		recent, err = set.Projects.ListRecent(dbc, recentProjectsLimit)
		return err
	})
	g.Go(func() (err error) {
		top, err = set.Capabilities.TopByRuleCount(dbc, topCapabilitiesLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return StatsDTO{}, err
	}

	out.ProjectsByStatus = ProjectsByStatus{
		Planning:   byStatus[portfolio.ProjectStatusPlanning],
		InProgress: byStatus[portfolio.ProjectStatusInProgress],
		OnHold:     byStatus[portfolio.ProjectStatusOnHold],
		Completed:  byStatus[portfolio.ProjectStatusCompleted],
		Cancelled:  byStatus[portfolio.ProjectStatusCancelled],
	}
	out.TotalProjects = lo.Sum(lo.Values(byStatus))
	out.ActiveProjects = out.ProjectsByStatus.InProgress
	out.CompletedProjects = out.ProjectsByStatus.Completed

	out.RecentProjects = lo.Map(recent, func(p *types.Project, _ int) RecentProject {
		return RecentProject{
			ID:                p.ID,
			Name:              p.Name,
			Code:              p.Code.String(),
			Status:            string(p.Status),
			ApplicationsCount: len(p.Applications),
			CapabilitiesCount: lo.SumBy(p.Applications, func(a *types.Application) int { return len(a.Capabilities) }),
			StartDate:         p.StartDate,
			PlannedEndDate:    p.PlannedEndDate,
		}
	})
	out.TopCapabilities = lo.Map(top, func(c repos.CapabilityRuleCount, _ int) TopCapability {
		return TopCapability{
			ID:                 c.ID,
			Name:               c.Name,
			ApplicationName:    c.ApplicationName,
			BusinessRulesCount: c.BusinessRulesCount,
			Status:             string(c.Status),
			Priority:           int(c.Priority),
		}
	})
	return out, nil
}

func (h handlers) stats(ctx context.Context, _ GetDashboardStatsQuery) (StatsDTO, error) {
	out, err := Stats(ctx, h.d.Repos)
	if err != nil {
		return StatsDTO{}, features.Read("dashboard.stats", err)
	}
	return out, nil
}

func (h handlers) summary(ctx context.Context, _ GetDashboardSummaryQuery) (SummaryDTO, error) {
	stats, err := Stats(ctx, h.d.Repos)
	if err != nil {
		return SummaryDTO{}, features.Read("dashboard.summary", err)
	}
	return SummaryDTO{
		TotalProjects:      stats.TotalProjects,
		ActiveProjects:     stats.ActiveProjects,
		TotalCapabilities:  stats.TotalCapabilities,
		TotalBusinessRules: stats.TotalBusinessRules,
		PublishedWikiPages: stats.PublishedWikiPages,
	}, nil
}

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[GetDashboardStatsQuery, StatsDTO](m, h.stats)
	mediator.Register[GetDashboardSummaryQuery, SummaryDTO](m, h.summary)
}
