package aggregates

import "time"

// Audit is embedded by every persisted aggregate.
type Audit struct {
	CreatedAt  time.Time  `gorm:"column:created_at;not null" json:"createdAt"`
	CreatedBy  string     `gorm:"column:created_by;size:100" json:"createdBy"`
	ModifiedAt *time.Time `gorm:"column:modified_at" json:"modifiedAt,omitempty"`
	ModifiedBy string     `gorm:"column:modified_by;size:100" json:"modifiedBy,omitempty"`
}

func (a *Audit) StampCreated(at time.Time, by string) {
	a.CreatedAt = at
	a.CreatedBy = by
}

func (a *Audit) StampModified(at time.Time, by string) {
	a.ModifiedAt = &at
	a.ModifiedBy = by
}
