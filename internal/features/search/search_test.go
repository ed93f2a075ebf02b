package search_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features/featuretest"
	"github.com/yungbote/cleanarch-backend/internal/features/search"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func TestGlobalSearchGroupsByKind(t *testing.T) {
	h := featuretest.New(t)
	search.Register(h.Mediator, h.Deps)
	ctx := context.Background()

	marker := strings.ToLower(featuretest.Unique("zeta"))
	p := testutil.SeedProject(t, ctx, h.DB, featuretest.Unique("PRJ"), "Project "+marker)
	app := testutil.SeedApplication(t, ctx, h.DB, p.ID, "App "+marker)
	c := testutil.SeedCapability(t, ctx, h.DB, app.ID, "Capability "+marker, portfolio.PriorityHigh)
	testutil.SeedBusinessRule(t, ctx, h.DB, c.ID, featuretest.Unique("BR"), "Rule "+marker)
	author := testutil.SeedUser(t, ctx, h.DB, featuretest.Unique("author"))
	page := testutil.SeedWikiPage(t, ctx, h.DB, "Wiki "+marker, author.ID)
	long := strings.Repeat("x", 250)
	require.NoError(t, h.DB.Model(page).Update("content", long+" "+marker).Error)

	res, err := mediator.Send[search.GlobalSearchQuery, search.ResultDTO](ctx, h.Mediator, search.GlobalSearchQuery{Q: marker})
	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	require.Len(t, res.Capabilities, 1)
	require.Len(t, res.BusinessRules, 1)
	require.Len(t, res.WikiPages, 1)
	assert.Equal(t, 4, res.TotalResults)

	assert.Equal(t, search.TypeProject, res.Projects[0].Type)
	assert.Equal(t, p.Code.String(), res.Projects[0].Code)
	assert.Empty(t, res.Capabilities[0].Code)
	wp := res.WikiPages[0]
	assert.Equal(t, "Draft", wp.Status)
	assert.Equal(t, page.Slug.String(), wp.Code)
	assert.Len(t, wp.Description, 203)
	assert.True(t, strings.HasSuffix(wp.Description, "..."))
}

func TestGlobalSearchCapsPerKind(t *testing.T) {
	h := featuretest.New(t)
	search.Register(h.Mediator, h.Deps)
	ctx := context.Background()

	marker := strings.ToLower(featuretest.Unique("cap"))
	for i := 0; i < 3; i++ {
		testutil.SeedProject(t, ctx, h.DB, featuretest.Unique("PRJ"), "Project "+marker)
	}

	res, err := mediator.Send[search.GlobalSearchQuery, search.ResultDTO](ctx, h.Mediator, search.GlobalSearchQuery{Q: marker, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Projects, 2)
	assert.Equal(t, 2, res.TotalResults)
}

func TestGlobalSearchRequiresTerm(t *testing.T) {
	h := featuretest.New(t)
	search.Register(h.Mediator, h.Deps)

	_, err := mediator.Send[search.GlobalSearchQuery, search.ResultDTO](context.Background(), h.Mediator, search.GlobalSearchQuery{Q: "  "})
	require.Error(t, err)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))
	assert.Equal(t, "q", domainagg.FieldsOf(err)[0].Property)
}
