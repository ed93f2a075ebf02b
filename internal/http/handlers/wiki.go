package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/wiki"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type WikiHandler struct {
	m *mediator.Mediator
}

func NewWikiHandler(m *mediator.Mediator) *WikiHandler {
	return &WikiHandler{m: m}
}

// GET /api/wiki?category=&includeDrafts=&limit=
func (wh *WikiHandler) List(c *gin.Context) {
	var q wiki.GetWikiPagesQuery
	if !bindQuery(c, &q) {
		return
	}
	reply[wiki.GetWikiPagesQuery, []wiki.WikiPageListItem](c, wh.m, q, http.StatusOK)
}

// GET /api/wiki/:id
func (wh *WikiHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reply[wiki.GetWikiPageByIDQuery, wiki.WikiPageDTO](c, wh.m, wiki.GetWikiPageByIDQuery{ID: id}, http.StatusOK)
}

// GET /api/wiki/slug/:slug
func (wh *WikiHandler) GetBySlug(c *gin.Context) {
	q := wiki.GetWikiPageBySlugQuery{Slug: c.Param("slug")}
	reply[wiki.GetWikiPageBySlugQuery, wiki.WikiPageDTO](c, wh.m, q, http.StatusOK)
}

// GET /api/wiki/:id/history
func (wh *WikiHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q := wiki.GetWikiPageHistoryQuery{ID: id}
	reply[wiki.GetWikiPageHistoryQuery, []wiki.WikiPageVersionDTO](c, wh.m, q, http.StatusOK)
}

// GET /api/wiki/search?searchTerm=&limit=
func (wh *WikiHandler) Search(c *gin.Context) {
	var q wiki.SearchWikiPagesQuery
	if !bindQuery(c, &q) {
		return
	}
	reply[wiki.SearchWikiPagesQuery, []wiki.WikiPageListItem](c, wh.m, q, http.StatusOK)
}

// GET /api/wiki/entity/:entityType/:entityId
func (wh *WikiHandler) ListByEntity(c *gin.Context) {
	entityID, ok := pathID(c, "entityId")
	if !ok {
		return
	}
	q := wiki.GetWikiPagesByEntityQuery{EntityType: c.Param("entityType"), EntityID: entityID}
	reply[wiki.GetWikiPagesByEntityQuery, []wiki.WikiPageListItem](c, wh.m, q, http.StatusOK)
}

// POST /api/wiki/:id/view
func (wh *WikiHandler) View(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, wh.m, wiki.IncrementWikiPageViewCommand{ID: id})
}

// POST /api/wiki
func (wh *WikiHandler) Create(c *gin.Context) {
	var cmd wiki.CreateWikiPageCommand
	if !bindJSON(c, &cmd) {
		return
	}
	created(c, wh.m, cmd)
}

// PUT /api/wiki/:id
// body: { "content": "...", "changeSummary": "..." }
func (wh *WikiHandler) Update(c *gin.Context) {
	var cmd wiki.UpdateWikiPageCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, wh.m, cmd)
}

// PUT /api/wiki/:id/title
func (wh *WikiHandler) UpdateTitle(c *gin.Context) {
	var cmd wiki.UpdateWikiPageTitleCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, wh.m, cmd)
}

// PUT /api/wiki/:id/publish
func (wh *WikiHandler) Publish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, wh.m, wiki.PublishWikiPageCommand{ID: id})
}

// PUT /api/wiki/:id/unpublish
func (wh *WikiHandler) Unpublish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, wh.m, wiki.UnpublishWikiPageCommand{ID: id})
}

// POST /api/wiki/:id/tags
func (wh *WikiHandler) AddTag(c *gin.Context) {
	var cmd wiki.AddWikiPageTagCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, wh.m, cmd)
}

// DELETE /api/wiki/:id/tags/:tag
func (wh *WikiHandler) RemoveTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, wh.m, wiki.RemoveWikiPageTagCommand{ID: id, Tag: c.Param("tag")})
}

// PUT /api/wiki/:id/link
func (wh *WikiHandler) Link(c *gin.Context) {
	var cmd wiki.LinkWikiPageCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, wh.m, cmd)
}

// DELETE /api/wiki/:id
func (wh *WikiHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, wh.m, wiki.DeleteWikiPageCommand{ID: id})
}
