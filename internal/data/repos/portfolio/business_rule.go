package portfolio

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/base"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type BusinessRuleFilter struct {
	SearchTerm   string
	CapabilityID *uuid.UUID
	Status       *types.BusinessRuleStatus
	Type         *types.BusinessRuleType
	Priority     *types.Priority
	Limit        int
}

type BusinessRuleRepo interface {
	base.Repository[types.BusinessRule]

	GetByCode(dbc dbctx.Context, code string) (*types.BusinessRule, error)
	CodeExists(dbc dbctx.Context, code string) (bool, error)
	ListByCapability(dbc dbctx.Context, capabilityID uuid.UUID) ([]*types.BusinessRule, error)
	Search(dbc dbctx.Context, filter BusinessRuleFilter) ([]*types.BusinessRule, error)
}

type businessRuleRepo struct {
	base.Repo[types.BusinessRule]
}

func NewBusinessRuleRepo(db *gorm.DB, baseLog *logger.Logger) BusinessRuleRepo {
	return &businessRuleRepo{Repo: base.New[types.BusinessRule](db, baseLog, "BusinessRuleRepo", "created_at DESC")}
}

func (r *businessRuleRepo) GetByCode(dbc dbctx.Context, code string) (*types.BusinessRule, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	return r.First(r.Conn(dbc).Where("code = ?", code))
}

func (r *businessRuleRepo) CodeExists(dbc dbctx.Context, code string) (bool, error) {
	var n int64
	if err := r.Conn(dbc).
		Model(&types.BusinessRule{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *businessRuleRepo) ListByCapability(dbc dbctx.Context, capabilityID uuid.UUID) ([]*types.BusinessRule, error) {
	var out []*types.BusinessRule
	if capabilityID == uuid.Nil {
		return out, nil
	}
	if err := r.Conn(dbc).
		Where("capability_id = ?", capabilityID).
		Order("priority ASC, name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *businessRuleRepo) Search(dbc dbctx.Context, filter BusinessRuleFilter) ([]*types.BusinessRule, error) {
	q := r.Conn(dbc)
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		like := base.Like(term)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(code) LIKE ?", like, like, like)
	}
	if filter.CapabilityID != nil {
		q = q.Where("capability_id = ?", *filter.CapabilityID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var out []*types.BusinessRule
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
