package wiki_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	domainwiki "github.com/yungbote/cleanarch-backend/internal/domain/wiki"
	"github.com/yungbote/cleanarch-backend/internal/features/featuretest"
	"github.com/yungbote/cleanarch-backend/internal/features/wiki"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func setup(t *testing.T) (*featuretest.Harness, context.Context, uuid.UUID) {
	t.Helper()
	h := featuretest.New(t)
	wiki.Register(h.Mediator, h.Deps)
	authorID := uuid.New()
	return h, featuretest.AsUser(context.Background(), authorID, "writer"), authorID
}

func create(t *testing.T, h *featuretest.Harness, ctx context.Context, title string, publish bool) uuid.UUID {
	t.Helper()
	id, err := mediator.Send[wiki.CreateWikiPageCommand, uuid.UUID](ctx, h.Mediator, wiki.CreateWikiPageCommand{
		Title:    title,
		Content:  "# " + title,
		Category: "Guides",
		Tags:     []string{"Onboarding"},
		Publish:  publish,
	})
	require.NoError(t, err)
	return id
}

func TestCreatePageStartsAtVersionOne(t *testing.T) {
	h, ctx, authorID := setup(t)
	title := "Getting Started " + featuretest.Unique("G")
	id := create(t, h, ctx, title, false)

	got, err := mediator.Send[wiki.GetWikiPageByIDQuery, wiki.WikiPageDTO](ctx, h.Mediator, wiki.GetWikiPageByIDQuery{ID: id})
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentVersion)
	assert.Equal(t, authorID, got.AuthorID)
	assert.Equal(t, []string{"onboarding"}, got.Tags)
	assert.False(t, got.IsPublished)
	assert.Equal(t, "General", got.EntityType)

	bySlug, err := mediator.Send[wiki.GetWikiPageBySlugQuery, wiki.WikiPageDTO](ctx, h.Mediator, wiki.GetWikiPageBySlugQuery{Slug: got.Slug})
	require.NoError(t, err)
	assert.Equal(t, id, bySlug.ID)
	assert.Contains(t, h.Events.Names(), domainwiki.EventPageCreated)
}

func TestCreatePageRequiresAuthor(t *testing.T) {
	h, _, _ := setup(t)
	_, err := mediator.Send[wiki.CreateWikiPageCommand, uuid.UUID](context.Background(), h.Mediator, wiki.CreateWikiPageCommand{
		Title:    "Anonymous",
		Content:  "text",
		Category: "Guides",
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized))
}

func TestCreatePageRejectsDuplicateSlug(t *testing.T) {
	h, ctx, _ := setup(t)
	title := "Release Notes " + featuretest.Unique("R")
	create(t, h, ctx, title, false)

	_, err := mediator.Send[wiki.CreateWikiPageCommand, uuid.UUID](ctx, h.Mediator, wiki.CreateWikiPageCommand{
		Title:    strings.ToUpper(title),
		Content:  "dup",
		Category: "Guides",
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeConflict))
}

func TestUpdateAppendsVersions(t *testing.T) {
	h, ctx, _ := setup(t)
	id := create(t, h, ctx, "Runbook "+featuretest.Unique("V"), true)

	for i, content := range []string{"second", "third"} {
		_, err := mediator.Send[wiki.UpdateWikiPageCommand, mediator.Unit](ctx, h.Mediator, wiki.UpdateWikiPageCommand{
			ID:            id,
			Content:       content,
			ChangeSummary: "edit " + content,
		})
		require.NoError(t, err, i)
	}

	history, err := mediator.Send[wiki.GetWikiPageHistoryQuery, []wiki.WikiPageVersionDTO](ctx, h.Mediator, wiki.GetWikiPageHistoryQuery{ID: id})
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{history[0].VersionNumber, history[1].VersionNumber, history[2].VersionNumber})
	assert.Equal(t, "Initial version", history[2].ChangeSummary)

	got, err := mediator.Send[wiki.GetWikiPageByIDQuery, wiki.WikiPageDTO](ctx, h.Mediator, wiki.GetWikiPageByIDQuery{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "third", got.Content)
	assert.Equal(t, 3, got.CurrentVersion)
}

func TestPublishTagsLinkAndViews(t *testing.T) {
	h, ctx, _ := setup(t)
	marker := featuretest.Unique("P")
	id := create(t, h, ctx, "Architecture "+marker, false)

	list, err := mediator.Send[wiki.GetWikiPagesQuery, []wiki.WikiPageListItem](ctx, h.Mediator, wiki.GetWikiPagesQuery{})
	require.NoError(t, err)
	for _, item := range list {
		assert.NotEqual(t, id, item.ID)
	}

	_, err = mediator.Send[wiki.PublishWikiPageCommand, mediator.Unit](ctx, h.Mediator, wiki.PublishWikiPageCommand{ID: id})
	require.NoError(t, err)
	_, err = mediator.Send[wiki.AddWikiPageTagCommand, mediator.Unit](ctx, h.Mediator, wiki.AddWikiPageTagCommand{ID: id, Tag: "design"})
	require.NoError(t, err)
	_, err = mediator.Send[wiki.AddWikiPageTagCommand, mediator.Unit](ctx, h.Mediator, wiki.AddWikiPageTagCommand{ID: id, Tag: "Design"})
	assert.Equal(t, "Tag already exists", domainagg.MessageOf(err))
	_, err = mediator.Send[wiki.RemoveWikiPageTagCommand, mediator.Unit](ctx, h.Mediator, wiki.RemoveWikiPageTagCommand{ID: id, Tag: "onboarding"})
	require.NoError(t, err)

	projectID := uuid.New()
	_, err = mediator.Send[wiki.LinkWikiPageCommand, mediator.Unit](ctx, h.Mediator, wiki.LinkWikiPageCommand{ID: id, EntityType: "project", EntityID: projectID})
	require.NoError(t, err)
	_, err = mediator.Send[wiki.IncrementWikiPageViewCommand, mediator.Unit](ctx, h.Mediator, wiki.IncrementWikiPageViewCommand{ID: id})
	require.NoError(t, err)

	got, err := mediator.Send[wiki.GetWikiPageByIDQuery, wiki.WikiPageDTO](ctx, h.Mediator, wiki.GetWikiPageByIDQuery{ID: id})
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
	assert.Equal(t, []string{"design"}, got.Tags)
	assert.Equal(t, 1, got.ViewCount)
	assert.Equal(t, "Project", got.EntityType)

	linked, err := mediator.Send[wiki.GetWikiPagesByEntityQuery, []wiki.WikiPageListItem](ctx, h.Mediator, wiki.GetWikiPagesByEntityQuery{EntityType: "Project", EntityID: projectID})
	require.NoError(t, err)
	require.Len(t, linked, 1)

	found, err := mediator.Send[wiki.SearchWikiPagesQuery, []wiki.WikiPageListItem](ctx, h.Mediator, wiki.SearchWikiPagesQuery{SearchTerm: marker})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)

	_, err = mediator.Send[wiki.SearchWikiPagesQuery, []wiki.WikiPageListItem](ctx, h.Mediator, wiki.SearchWikiPagesQuery{})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))
}
