package wiki

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/base"
	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type WikiPageFilter struct {
	SearchTerm    string
	Category      string
	PublishedOnly bool
	Limit         int
}

type WikiPageRepo interface {
	base.Repository[types.WikiPage]

	GetBySlug(dbc dbctx.Context, slug string) (*types.WikiPage, error)
	SlugExists(dbc dbctx.Context, slug string) (bool, error)
	GetWithVersions(dbc dbctx.Context, id uuid.UUID) (*types.WikiPage, error)
	ListVersions(dbc dbctx.Context, pageID uuid.UUID) ([]*types.WikiPageVersion, error)
	ListPublished(dbc dbctx.Context) ([]*types.WikiPage, error)
	ListByEntity(dbc dbctx.Context, entityType types.WikiEntityType, entityID uuid.UUID) ([]*types.WikiPage, error)
	Search(dbc dbctx.Context, filter WikiPageFilter) ([]*types.WikiPage, error)
	CountPublished(dbc dbctx.Context) (int64, error)
}

type wikiPageRepo struct {
	base.Repo[types.WikiPage]
}

const recentFirst = "COALESCE(modified_at, created_at) DESC"

func NewWikiPageRepo(db *gorm.DB, baseLog *logger.Logger) WikiPageRepo {
	return &wikiPageRepo{Repo: base.New[types.WikiPage](db, baseLog, "WikiPageRepo", recentFirst)}
}

// Update saves the page row and inserts any versions not yet persisted.
// Versions are append-only, so existing rows are left untouched.
func (r *wikiPageRepo) Update(dbc dbctx.Context, page *types.WikiPage) error {
	page.StampModified(r.Now(), ctxutil.Actor(dbc.Ctx))
	t := r.Conn(dbc)
	if err := t.Omit(clause.Associations).Save(page).Error; err != nil {
		return err
	}
	if len(page.Versions) > 0 {
		if err := t.Clauses(clause.OnConflict{DoNothing: true}).Create(&page.Versions).Error; err != nil {
			return err
		}
	}
	uow.Track(dbc.Ctx, page)
	return nil
}

func (r *wikiPageRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.WikiPage, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, nil
	}
	return r.First(r.Conn(dbc).Where("slug = ?", slug))
}

func (r *wikiPageRepo) SlugExists(dbc dbctx.Context, slug string) (bool, error) {
	var n int64
	if err := r.Conn(dbc).
		Model(&types.WikiPage{}).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetWithVersions loads the page with its history, newest version first.
func (r *wikiPageRepo) GetWithVersions(dbc dbctx.Context, id uuid.UUID) (*types.WikiPage, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.First(r.Conn(dbc).
		Preload("Versions", func(db *gorm.DB) *gorm.DB { return db.Order("version_number DESC") }).
		Where("id = ?", id))
}

func (r *wikiPageRepo) ListVersions(dbc dbctx.Context, pageID uuid.UUID) ([]*types.WikiPageVersion, error) {
	var out []*types.WikiPageVersion
	if pageID == uuid.Nil {
		return out, nil
	}
	if err := r.Conn(dbc).
		Where("page_id = ?", pageID).
		Order("version_number DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *wikiPageRepo) ListPublished(dbc dbctx.Context) ([]*types.WikiPage, error) {
	var out []*types.WikiPage
	if err := r.Conn(dbc).
		Where("is_published = ?", true).
		Order(recentFirst).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *wikiPageRepo) ListByEntity(dbc dbctx.Context, entityType types.WikiEntityType, entityID uuid.UUID) ([]*types.WikiPage, error) {
	var out []*types.WikiPage
	if err := r.Conn(dbc).
		Where("entity_type = ? AND related_entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *wikiPageRepo) Search(dbc dbctx.Context, filter WikiPageFilter) ([]*types.WikiPage, error) {
	q := r.Conn(dbc)
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		like := base.Like(term)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(category) LIKE ?", like, like, like)
	}
	if c := strings.TrimSpace(filter.Category); c != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	if filter.PublishedOnly {
		q = q.Where("is_published = ?", true)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var out []*types.WikiPage
	if err := q.Order("view_count DESC").Order(recentFirst).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *wikiPageRepo) CountPublished(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := r.Conn(dbc).
		Model(&types.WikiPage{}).
		Where("is_published = ?", true).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
