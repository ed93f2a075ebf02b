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

type CapabilityFilter struct {
	SearchTerm    string
	ApplicationID *uuid.UUID
	Status        *types.CapabilityStatus
	Category      *types.CapabilityCategory
	Priority      *types.Priority
	Limit         int
}

// CapabilityRuleCount is a capability ranked by how many rules it owns.
type CapabilityRuleCount struct {
	ID                 uuid.UUID
	Name               string
	ApplicationName    string
	BusinessRulesCount int64
	Status             types.CapabilityStatus
	Priority           types.Priority
}

type CapabilityRepo interface {
	base.Repository[types.Capability]

	ListByApplication(dbc dbctx.Context, applicationID uuid.UUID) ([]*types.Capability, error)
	GetWithRules(dbc dbctx.Context, id uuid.UUID) (*types.Capability, error)
	ListWithRules(dbc dbctx.Context) ([]*types.Capability, error)
	Search(dbc dbctx.Context, filter CapabilityFilter) ([]*types.Capability, error)
	TopByRuleCount(dbc dbctx.Context, limit int) ([]CapabilityRuleCount, error)
}

type capabilityRepo struct {
	base.Repo[types.Capability]
}

func NewCapabilityRepo(db *gorm.DB, baseLog *logger.Logger) CapabilityRepo {
	return &capabilityRepo{Repo: base.New[types.Capability](db, baseLog, "CapabilityRepo", "created_at DESC")}
}

func (r *capabilityRepo) ListByApplication(dbc dbctx.Context, applicationID uuid.UUID) ([]*types.Capability, error) {
	var out []*types.Capability
	if applicationID == uuid.Nil {
		return out, nil
	}
	if err := r.Conn(dbc).
		Preload("BusinessRules").
		Where("application_id = ?", applicationID).
		Order("priority ASC, name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityRepo) GetWithRules(dbc dbctx.Context, id uuid.UUID) (*types.Capability, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.First(r.Conn(dbc).
		Preload("BusinessRules", func(db *gorm.DB) *gorm.DB { return db.Order("priority ASC, name ASC") }).
		Where("id = ?", id))
}

func (r *capabilityRepo) ListWithRules(dbc dbctx.Context) ([]*types.Capability, error) {
	var out []*types.Capability
	if err := r.Conn(dbc).
		Preload("BusinessRules").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityRepo) Search(dbc dbctx.Context, filter CapabilityFilter) ([]*types.Capability, error) {
	q := r.Conn(dbc).Preload("BusinessRules")
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		like := base.Like(term)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.ApplicationID != nil {
		q = q.Where("application_id = ?", *filter.ApplicationID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var out []*types.Capability
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *capabilityRepo) TopByRuleCount(dbc dbctx.Context, limit int) ([]CapabilityRuleCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []CapabilityRuleCount
	err := r.Conn(dbc).
		Table("capabilities AS c").
		Select(`c.id AS id, c.name AS name, COALESCE(a.name, 'Unknown') AS application_name,
			COUNT(br.id) AS business_rules_count, c.status AS status, c.priority AS priority`).
		Joins("LEFT JOIN applications a ON a.id = c.application_id").
		Joins("LEFT JOIN business_rules br ON br.capability_id = c.id").
		Group("c.id, c.name, a.name, c.status, c.priority").
		Order("business_rules_count DESC, c.priority ASC, c.name ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
