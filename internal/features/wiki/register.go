package wiki

import (
	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[CreateWikiPageCommand, uuid.UUID](m, h.create)
	mediator.Register[UpdateWikiPageCommand, mediator.Unit](m, h.update)
	mediator.Register[UpdateWikiPageTitleCommand, mediator.Unit](m, h.updateTitle)
	mediator.Register[PublishWikiPageCommand, mediator.Unit](m, h.publish)
	mediator.Register[UnpublishWikiPageCommand, mediator.Unit](m, h.unpublish)
	mediator.Register[AddWikiPageTagCommand, mediator.Unit](m, h.addTag)
	mediator.Register[RemoveWikiPageTagCommand, mediator.Unit](m, h.removeTag)
	mediator.Register[LinkWikiPageCommand, mediator.Unit](m, h.link)
	mediator.Register[IncrementWikiPageViewCommand, mediator.Unit](m, h.view)
	mediator.Register[DeleteWikiPageCommand, mediator.Unit](m, h.delete)
	mediator.Register[GetWikiPagesQuery, []WikiPageListItem](m, h.list)
	mediator.Register[GetWikiPageByIDQuery, WikiPageDTO](m, h.getByID)
	mediator.Register[GetWikiPageBySlugQuery, WikiPageDTO](m, h.getBySlug)
	mediator.Register[GetWikiPageHistoryQuery, []WikiPageVersionDTO](m, h.history)
	mediator.Register[SearchWikiPagesQuery, []WikiPageListItem](m, h.search)
	mediator.Register[GetWikiPagesByEntityQuery, []WikiPageListItem](m, h.listByEntity)
}
