package portfolio

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/base"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type ApplicationRepo interface {
	base.Repository[types.Application]

	ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Application, error)
	CountByProject(dbc dbctx.Context, projectID uuid.UUID) (int64, error)
	GetWithCapabilities(dbc dbctx.Context, id uuid.UUID) (*types.Application, error)
	NamesByIDs(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type applicationRepo struct {
	base.Repo[types.Application]
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
	return &applicationRepo{Repo: base.New[types.Application](db, baseLog, "ApplicationRepo", "created_at DESC")}
}

func (r *applicationRepo) ListByProject(dbc dbctx.Context, projectID uuid.UUID) ([]*types.Application, error) {
	var out []*types.Application
	if projectID == uuid.Nil {
		return out, nil
	}
	if err := r.Conn(dbc).
		Preload("Capabilities").
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *applicationRepo) CountByProject(dbc dbctx.Context, projectID uuid.UUID) (int64, error) {
	var n int64
	if err := r.Conn(dbc).
		Model(&types.Application{}).
		Where("project_id = ?", projectID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *applicationRepo) GetWithCapabilities(dbc dbctx.Context, id uuid.UUID) (*types.Application, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.First(r.Conn(dbc).Preload("Capabilities").Where("id = ?", id))
}

func (r *applicationRepo) NamesByIDs(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := r.Conn(dbc).
		Model(&types.Application{}).
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}
