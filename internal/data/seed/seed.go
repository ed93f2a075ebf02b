// Package seed loads the demo portfolio from embedded YAML fixtures.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/notification"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/user"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
	"github.com/yungbote/cleanarch-backend/internal/domain/wiki"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

const seededBy = "system"

//go:embed seed.yaml
var fixturesYAML []byte

type Fixtures struct {
	Users         []UserFixture         `yaml:"users"`
	Projects      []ProjectFixture      `yaml:"projects"`
	WikiPages     []WikiPageFixture     `yaml:"wikiPages"`
	Notifications []NotificationFixture `yaml:"notifications"`
}

type UserFixture struct {
	Username string   `yaml:"username"`
	Email    string   `yaml:"email"`
	FullName string   `yaml:"fullName"`
	Password string   `yaml:"password"`
	Roles    []string `yaml:"roles"`
}

type ProjectFixture struct {
	Code           string               `yaml:"code"`
	Name           string               `yaml:"name"`
	Description    string               `yaml:"description"`
	StartMonthsAgo int                  `yaml:"startMonthsAgo"`
	Manager        string               `yaml:"manager"`
	Status         string               `yaml:"status"`
	Applications   []ApplicationFixture `yaml:"applications"`
}

type ApplicationFixture struct {
	Name            string              `yaml:"name"`
	Description     string              `yaml:"description"`
	Type            string              `yaml:"type"`
	Version         string              `yaml:"version"`
	TechnologyStack string              `yaml:"technologyStack"`
	Capabilities    []CapabilityFixture `yaml:"capabilities"`
}

type CapabilityFixture struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Category    string        `yaml:"category"`
	Priority    string        `yaml:"priority"`
	Rules       []RuleFixture `yaml:"rules"`
}

type RuleFixture struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Priority    string `yaml:"priority"`
	Inactive    bool   `yaml:"inactive"`
}

type WikiPageFixture struct {
	Title     string   `yaml:"title"`
	Category  string   `yaml:"category"`
	Author    string   `yaml:"author"`
	Published bool     `yaml:"published"`
	Tags      []string `yaml:"tags"`
	Content   string   `yaml:"content"`
}

type NotificationFixture struct {
	Title      string `yaml:"title"`
	Message    string `yaml:"message"`
	Type       string `yaml:"type"`
	User       string `yaml:"user"`
	Read       bool   `yaml:"read"`
	EntityType string `yaml:"entityType"`
	Project    string `yaml:"project"`
}

// Load parses the embedded fixtures.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse seed fixtures: %w", err)
	}
	return &f, nil
}

type Hasher interface {
	Hash(password string) (string, error)
}

// Counts is the number of rows per aggregate table.
type Counts struct {
	Projects      int64 `json:"projects"`
	Applications  int64 `json:"applications"`
	Capabilities  int64 `json:"capabilities"`
	BusinessRules int64 `json:"businessRules"`
	WikiPages     int64 `json:"wikiPages"`
	Users         int64 `json:"users"`
	Notifications int64 `json:"notifications"`
}

func (c Counts) Total() int64 {
	return c.Projects + c.Applications + c.Capabilities + c.BusinessRules + c.WikiPages + c.Users + c.Notifications
}

type Seeder struct {
	db     *gorm.DB
	log    *logger.Logger
	hasher Hasher
	now    func() time.Time
}

func New(db *gorm.DB, baseLog *logger.Logger, hasher Hasher) *Seeder {
	return &Seeder{
		db:     db,
		log:    baseLog.With("component", "Seeder"),
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Seed inserts the fixtures in one transaction. It reports false and writes
// nothing when any project already exists.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	f, err := Load()
	if err != nil {
		return false, err
	}
	var existing int64
	if err := s.db.WithContext(ctx).Model(&types.Project{}).Count(&existing).Error; err != nil {
		return false, fmt.Errorf("count projects: %w", err)
	}
	if existing > 0 {
		s.log.Info("Database already seeded, skipping", "projects", existing)
		return false, nil
	}
	s.log.Info("Seeding database")
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w := &writer{tx: tx, now: s.now(), hasher: s.hasher, users: map[string]uuid.UUID{}, projects: map[string]uuid.UUID{}}
		return w.run(f)
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	s.log.Info("Database seeding completed")
	return true, nil
}

type writer struct {
	tx       *gorm.DB
	now      time.Time
	hasher   Hasher
	users    map[string]uuid.UUID
	projects map[string]uuid.UUID
}

func (w *writer) run(f *Fixtures) error {
	for _, u := range f.Users {
		if err := w.user(u); err != nil {
			return fmt.Errorf("user %s: %w", u.Username, err)
		}
	}
	for _, p := range f.Projects {
		if err := w.project(p); err != nil {
			return fmt.Errorf("project %s: %w", p.Code, err)
		}
	}
	for _, p := range f.WikiPages {
		if err := w.wikiPage(p); err != nil {
			return fmt.Errorf("wiki page %q: %w", p.Title, err)
		}
	}
	for _, n := range f.Notifications {
		if err := w.notification(n); err != nil {
			return fmt.Errorf("notification %q: %w", n.Title, err)
		}
	}
	return nil
}

// insert stamps audit fields, drops construction events and writes the row
// without touching associations.
func (w *writer) insert(entity interface {
	domainagg.Auditable
	domainagg.EventSource
}) error {
	entity.StampCreated(w.now, seededBy)
	entity.ClearEvents()
	return w.tx.Omit(clause.Associations).Create(entity).Error
}

func (w *writer) user(f UserFixture) error {
	var existing types.User
	err := w.tx.Where("LOWER(username) = ?", strings.ToLower(f.Username)).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID != uuid.Nil {
		w.users[f.Username] = existing.ID
		return nil
	}
	hash, err := w.hasher.Hash(f.Password)
	if err != nil {
		return err
	}
	u, err := user.New(f.Username, f.Email, hash, f.FullName)
	if err != nil {
		return err
	}
	for _, role := range f.Roles {
		if err := u.AddRole(role); err != nil {
			return err
		}
	}
	if err := w.insert(u); err != nil {
		return err
	}
	w.users[f.Username] = u.ID
	return nil
}

func (w *writer) project(f ProjectFixture) error {
	code, err := valueobject.NewProjectCode(f.Code)
	if err != nil {
		return err
	}
	p, err := portfolio.NewProject(code, f.Name, f.Description, w.now.AddDate(0, -f.StartMonthsAgo, 0), f.Manager)
	if err != nil {
		return err
	}
	if f.Status != "" {
		status, err := portfolio.ParseProjectStatus(f.Status)
		if err != nil {
			return err
		}
		if status != p.Status {
			if err := p.ChangeStatus(status); err != nil {
				return err
			}
		}
	}
	if err := w.insert(p); err != nil {
		return err
	}
	w.projects[f.Code] = p.ID
	for _, a := range f.Applications {
		if err := w.application(p.ID, a); err != nil {
			return fmt.Errorf("application %s: %w", a.Name, err)
		}
	}
	return nil
}

func (w *writer) application(projectID uuid.UUID, f ApplicationFixture) error {
	appType, err := portfolio.ParseApplicationType(f.Type)
	if err != nil {
		return err
	}
	version, err := valueobject.NewApplicationVersion(f.Version)
	if err != nil {
		return err
	}
	a, err := portfolio.NewApplication(projectID, f.Name, f.Description, appType, version)
	if err != nil {
		return err
	}
	if f.TechnologyStack != "" {
		if err := a.SetTechnologyStack(f.TechnologyStack); err != nil {
			return err
		}
	}
	if err := w.insert(a); err != nil {
		return err
	}
	for _, c := range f.Capabilities {
		if err := w.capability(a.ID, c); err != nil {
			return fmt.Errorf("capability %s: %w", c.Name, err)
		}
	}
	return nil
}

func (w *writer) capability(applicationID uuid.UUID, f CapabilityFixture) error {
	category, err := portfolio.ParseCapabilityCategory(f.Category)
	if err != nil {
		return err
	}
	priority, err := portfolio.ParsePriority(f.Priority)
	if err != nil {
		return err
	}
	c, err := portfolio.NewCapability(applicationID, f.Name, f.Description, category, priority)
	if err != nil {
		return err
	}
	if err := w.insert(c); err != nil {
		return err
	}
	for _, r := range f.Rules {
		if err := w.rule(c.ID, r); err != nil {
			return fmt.Errorf("rule %s: %w", r.Code, err)
		}
	}
	return nil
}

func (w *writer) rule(capabilityID uuid.UUID, f RuleFixture) error {
	code, err := valueobject.NewRuleCode(f.Code)
	if err != nil {
		return err
	}
	ruleType, err := portfolio.ParseBusinessRuleType(f.Type)
	if err != nil {
		return err
	}
	priority, err := portfolio.ParsePriority(f.Priority)
	if err != nil {
		return err
	}
	r, err := portfolio.NewBusinessRule(capabilityID, code, f.Name, f.Description, ruleType, priority)
	if err != nil {
		return err
	}
	if f.Inactive {
		if err := r.Deactivate(); err != nil {
			return err
		}
	}
	return w.insert(r)
}

func (w *writer) wikiPage(f WikiPageFixture) error {
	authorID, ok := w.users[f.Author]
	if !ok {
		return fmt.Errorf("unknown author %q", f.Author)
	}
	p, err := wiki.NewPage(f.Title, strings.TrimRight(f.Content, "\n"), f.Category, authorID)
	if err != nil {
		return err
	}
	for _, tag := range f.Tags {
		if err := p.AddTag(tag); err != nil {
			return err
		}
	}
	if f.Published {
		p.Publish(w.now)
	}
	p.StampCreated(w.now, seededBy)
	p.ClearEvents()
	for _, v := range p.Versions {
		v.CreatedAt = w.now
	}
	// Versions are written through the association.
	return w.tx.Create(p).Error
}

func (w *writer) notification(f NotificationFixture) error {
	typ, err := notification.ParseType(f.Type)
	if err != nil {
		return err
	}
	var userID *uuid.UUID
	if f.User != "" {
		id, ok := w.users[f.User]
		if !ok {
			return fmt.Errorf("unknown user %q", f.User)
		}
		userID = &id
	}
	var entityID *uuid.UUID
	if f.Project != "" {
		id, ok := w.projects[f.Project]
		if !ok {
			return fmt.Errorf("unknown project %q", f.Project)
		}
		entityID = &id
	}
	n, err := notification.New(f.Title, f.Message, typ, userID, f.EntityType, entityID)
	if err != nil {
		return err
	}
	if f.Read {
		n.MarkAsRead(w.now)
	}
	return w.insert(n)
}

// CountAll counts rows in every aggregate table.
func CountAll(ctx context.Context, db *gorm.DB) (Counts, error) {
	var c Counts
	targets := []struct {
		model any
		dst   *int64
	}{
		{&types.Project{}, &c.Projects},
		{&types.Application{}, &c.Applications},
		{&types.Capability{}, &c.Capabilities},
		{&types.BusinessRule{}, &c.BusinessRules},
		{&types.WikiPage{}, &c.WikiPages},
		{&types.User{}, &c.Users},
		{&types.Notification{}, &c.Notifications},
	}
	for _, t := range targets {
		if err := db.WithContext(ctx).Model(t.model).Count(t.dst).Error; err != nil {
			return Counts{}, fmt.Errorf("count %T: %w", t.model, err)
		}
	}
	return c, nil
}

// Clear deletes every row, children first, and returns the counts it removed.
func Clear(ctx context.Context, db *gorm.DB) (Counts, error) {
	before, err := CountAll(ctx, db)
	if err != nil {
		return Counts{}, err
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&types.Notification{},
			&types.WikiPageVersion{},
			&types.WikiPage{},
			&types.BusinessRule{},
			&types.Capability{},
			&types.Application{},
			&types.Project{},
			&types.User{},
		} {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	return before, nil
}
