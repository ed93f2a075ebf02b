// Package export renders read models as CSV downloads.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/features/dashboard"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

const ContentType = "text/csv; charset=utf-8"

const dateLayout = "2006-01-02"

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportProjectsQuery struct{}

type ExportCapabilitiesQuery struct{}

type ExportDashboardQuery struct{}

type ExportFullReportQuery struct{}

// table is one titled CSV block. Multi-table files separate blocks with a
// blank line.
type table struct {
	title  string
	header []string
	rows   [][]string
}

type handlers struct {
	d features.Deps
}

func (h handlers) projects(ctx context.Context, _ ExportProjectsQuery) (File, error) {
	t, err := h.projectTable(ctx)
	if err != nil {
		return File{}, features.Read("export.projects", err)
	}
	return h.file("Projects", t)
}

func (h handlers) capabilities(ctx context.Context, _ ExportCapabilitiesQuery) (File, error) {
	t, err := h.capabilityTable(ctx)
	if err != nil {
		return File{}, features.Read("export.capabilities", err)
	}
	return h.file("Capabilities", t)
}

func (h handlers) dashboard(ctx context.Context, _ ExportDashboardQuery) (File, error) {
	stats, err := dashboard.Stats(ctx, h.d.Repos)
	if err != nil {
		return File{}, features.Read("export.dashboard", err)
	}
	return h.file("Dashboard", dashboardTables(stats)...)
}

func (h handlers) fullReport(ctx context.Context, _ ExportFullReportQuery) (File, error) {
	const op = "export.full_report"
	if _, err := features.CurrentUser(ctx, op); err != nil {
		return File{}, err
	}
	stats, err := dashboard.Stats(ctx, h.d.Repos)
	if err != nil {
		return File{}, features.Read(op, err)
	}
	projects, err := h.projectTable(ctx)
	if err != nil {
		return File{}, features.Read(op, err)
	}
	caps, err := h.capabilityTable(ctx)
	if err != nil {
		return File{}, features.Read(op, err)
	}
	tables := append(dashboardTables(stats), projects, caps)
	return h.file("Full_Report", tables...)
}

func (h handlers) projectTable(ctx context.Context) (table, error) {
	rows, err := h.d.Repos.Projects.ListWithApplications(dbctx.New(ctx))
	if err != nil {
		return table{}, err
	}
	return table{
		title:  "Projects",
		header: []string{"Code", "Name", "Description", "Status", "StartDate", "PlannedEndDate", "ActualEndDate", "ProjectManager", "Applications", "CreatedAt"},
		rows: lo.Map(rows, func(p *types.Project, _ int) []string {
			return []string{
				p.Code.String(), p.Name, p.Description, string(p.Status),
				p.StartDate.Format(dateLayout), optDate(p.PlannedEndDate), optDate(p.ActualEndDate),
				p.ProjectManager, strconv.Itoa(len(p.Applications)), p.CreatedAt.Format(time.RFC3339),
			}
		}),
	}, nil
}

func (h handlers) capabilityTable(ctx context.Context) (table, error) {
	rows, err := h.d.Repos.Capabilities.ListWithRules(dbctx.New(ctx))
	if err != nil {
		return table{}, err
	}
	return table{
		title:  "Capabilities",
		header: []string{"Name", "Description", "Status", "Category", "Priority", "BusinessRules", "CreatedAt"},
		rows: lo.Map(rows, func(c *types.Capability, _ int) []string {
			return []string{
				c.Name, c.Description, string(c.Status), string(c.Category), c.Priority.String(),
				strconv.Itoa(len(c.BusinessRules)), c.CreatedAt.Format(time.RFC3339),
			}
		}),
	}, nil
}

func dashboardTables(s dashboard.StatsDTO) []table {
	count := func(n int64) string { return strconv.FormatInt(n, 10) }
	return []table{
		{
			title:  "Summary",
			header: []string{"Metric", "Value"},
			rows: [][]string{
				{"Total Projects", count(s.TotalProjects)},
				{"Active Projects", count(s.ActiveProjects)},
				{"Completed Projects", count(s.CompletedProjects)},
				{"Total Applications", count(s.TotalApplications)},
				{"Total Capabilities", count(s.TotalCapabilities)},
				{"Total Business Rules", count(s.TotalBusinessRules)},
				{"Total Wiki Pages", count(s.TotalWikiPages)},
				{"Published Wiki Pages", count(s.PublishedWikiPages)},
			},
		},
		{
			title:  "Projects by Status",
			header: []string{"Status", "Count"},
			rows: [][]string{
				{"Planning", count(s.ProjectsByStatus.Planning)},
				{"In Progress", count(s.ProjectsByStatus.InProgress)},
				{"On Hold", count(s.ProjectsByStatus.OnHold)},
				{"Completed", count(s.ProjectsByStatus.Completed)},
				{"Cancelled", count(s.ProjectsByStatus.Cancelled)},
			},
		},
		{
			title:  "Recent Projects",
			header: []string{"Code", "Name", "Status", "Applications", "Capabilities", "StartDate", "PlannedEndDate"},
			rows: lo.Map(s.RecentProjects, func(p dashboard.RecentProject, _ int) []string {
				return []string{p.Code, p.Name, p.Status, strconv.Itoa(p.ApplicationsCount), strconv.Itoa(p.CapabilitiesCount), p.StartDate.Format(dateLayout), optDate(p.PlannedEndDate)}
			}),
		},
		{
			title:  "Top Capabilities",
			header: []string{"Capability", "Application", "BusinessRules", "Status", "Priority"},
			rows: lo.Map(s.TopCapabilities, func(c dashboard.TopCapability, _ int) []string {
				return []string{c.Name, c.ApplicationName, count(c.BusinessRulesCount), c.Status, types.Priority(c.Priority).String()}
			}),
		},
	}
}

func (h handlers) file(prefix string, tables ...table) (File, error) {
	data, err := render(tables)
	if err != nil {
		return File{}, fmt.Errorf("render %s csv: %w", prefix, err)
	}
	return File{
		Name:        fmt.Sprintf("%s_%s.csv", prefix, h.d.Now().Format("20060102_150405")),
		ContentType: ContentType,
		Data:        data,
	}, nil
}

func render(tables []table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	multi := len(tables) > 1
	for i, t := range tables {
		if multi {
			if i > 0 {
				w.Flush()
				buf.WriteString("\n")
			}
			if err := w.Write([]string{"# " + t.title}); err != nil {
				return nil, err
			}
		}
		if err := w.Write(t.header); err != nil {
			return nil, err
		}
		if err := w.WriteAll(t.rows); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[ExportProjectsQuery, File](m, h.projects)
	mediator.Register[ExportCapabilitiesQuery, File](m, h.capabilities)
	mediator.Register[ExportDashboardQuery, File](m, h.dashboard)
	mediator.Register[ExportFullReportQuery, File](m, h.fullReport)
}
