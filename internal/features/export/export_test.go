package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features/export"
	"github.com/yungbote/cleanarch-backend/internal/features/featuretest"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func TestExportProjects(t *testing.T) {
	h := featuretest.New(t)
	export.Register(h.Mediator, h.Deps)
	ctx := context.Background()

	code := featuretest.Unique("EXP")
	p := testutil.SeedProject(t, ctx, h.DB, code, "Export, \"quoted\"")
	testutil.SeedApplication(t, ctx, h.DB, p.ID, "Portal")

	f, err := mediator.Send[export.ExportProjectsQuery, export.File](ctx, h.Mediator, export.ExportProjectsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Projects_20240601_120000.csv", f.Name)
	assert.Equal(t, export.ContentType, f.ContentType)

	records, err := csv.NewReader(bytes.NewReader(f.Data)).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(records), 2)
	assert.Equal(t, "Code", records[0][0])

	var row []string
	for _, r := range records[1:] {
		if r[0] == code {
			row = r
		}
	}
	require.NotNil(t, row, "exported row for %s", code)
	assert.Equal(t, "Export, \"quoted\"", row[1])
	assert.Equal(t, "Planning", row[3])
	assert.Equal(t, "2024-01-01", row[4])
	assert.Equal(t, "1", row[8])
}

func TestExportCapabilitiesCountsRules(t *testing.T) {
	h := featuretest.New(t)
	export.Register(h.Mediator, h.Deps)
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, h.DB, featuretest.Unique("EXP"), "Export")
	app := testutil.SeedApplication(t, ctx, h.DB, p.ID, "Portal")
	name := featuretest.Unique("Cap")
	c := testutil.SeedCapability(t, ctx, h.DB, app.ID, name, portfolio.PriorityCritical)
	testutil.SeedBusinessRule(t, ctx, h.DB, c.ID, featuretest.Unique("BR"), "Rule")

	f, err := mediator.Send[export.ExportCapabilitiesQuery, export.File](ctx, h.Mediator, export.ExportCapabilitiesQuery{})
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(f.Data)).ReadAll()
	require.NoError(t, err)
	for _, r := range records[1:] {
		if r[0] == name {
			assert.Equal(t, "Critical", r[4])
			assert.Equal(t, "1", r[5])
			return
		}
	}
	t.Fatalf("capability %s missing from export", name)
}

func TestExportDashboardHasSections(t *testing.T) {
	h := featuretest.New(t)
	export.Register(h.Mediator, h.Deps)

	f, err := mediator.Send[export.ExportDashboardQuery, export.File](context.Background(), h.Mediator, export.ExportDashboardQuery{})
	require.NoError(t, err)
	body := string(f.Data)
	for _, section := range []string{"# Summary", "# Projects by Status", "# Recent Projects", "# Top Capabilities"} {
		assert.Contains(t, body, section)
	}
	assert.True(t, strings.HasPrefix(f.Name, "Dashboard_"))
}

func TestFullReportRequiresCaller(t *testing.T) {
	h := featuretest.New(t)
	export.Register(h.Mediator, h.Deps)

	_, err := mediator.Send[export.ExportFullReportQuery, export.File](context.Background(), h.Mediator, export.ExportFullReportQuery{})
	require.Error(t, err)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized))

	ctx := featuretest.AsUser(context.Background(), uuid.New(), "reporter")
	f, err := mediator.Send[export.ExportFullReportQuery, export.File](ctx, h.Mediator, export.ExportFullReportQuery{})
	require.NoError(t, err)
	assert.Contains(t, string(f.Data), "# Projects")
	assert.Contains(t, string(f.Data), "# Capabilities")
}
