package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/base"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type ProjectFilter struct {
	Status        *types.ProjectStatus
	SearchTerm    string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
}

type ProjectRepo interface {
	base.Repository[types.Project]

	GetByCode(dbc dbctx.Context, code string) (*types.Project, error)
	CodeExists(dbc dbctx.Context, code string) (bool, error)
	GetWithApplications(dbc dbctx.Context, id uuid.UUID) (*types.Project, error)
	ListWithApplications(dbc dbctx.Context) ([]*types.Project, error)
	Search(dbc dbctx.Context, filter ProjectFilter) ([]*types.Project, error)
	ListRecent(dbc dbctx.Context, limit int) ([]*types.Project, error)
	CountByStatus(dbc dbctx.Context) (map[types.ProjectStatus]int64, error)
}

type projectRepo struct {
	base.Repo[types.Project]
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{Repo: base.New[types.Project](db, baseLog, "ProjectRepo", "created_at DESC")}
}

func (r *projectRepo) GetByCode(dbc dbctx.Context, code string) (*types.Project, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	return r.First(r.Conn(dbc).Where("code = ?", code))
}

func (r *projectRepo) CodeExists(dbc dbctx.Context, code string) (bool, error) {
	var n int64
	if err := r.Conn(dbc).
		Model(&types.Project{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *projectRepo) GetWithApplications(dbc dbctx.Context, id uuid.UUID) (*types.Project, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.First(r.Conn(dbc).
		Preload("Applications", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("id = ?", id))
}

func (r *projectRepo) ListWithApplications(dbc dbctx.Context) ([]*types.Project, error) {
	var out []*types.Project
	if err := r.Conn(dbc).
		Preload("Applications.Capabilities").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectRepo) Search(dbc dbctx.Context, filter ProjectFilter) ([]*types.Project, error) {
	q := r.Conn(dbc).Preload("Applications")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		like := base.Like(term)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	if filter.StartDateFrom != nil {
		q = q.Where("start_date >= ?", filter.StartDateFrom.UTC())
	}
	if filter.StartDateTo != nil {
		q = q.Where("start_date <= ?", filter.StartDateTo.UTC())
	}
	var out []*types.Project
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.Project, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []*types.Project
	if err := r.Conn(dbc).
		Preload("Applications.Capabilities").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectRepo) CountByStatus(dbc dbctx.Context) (map[types.ProjectStatus]int64, error) {
	var rows []struct {
		Status types.ProjectStatus
		Total  int64
	}
	if err := r.Conn(dbc).
		Model(&types.Project{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[types.ProjectStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
