package entitlement

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Money represents a monetary amount in the smallest currency unit.
// For example, $10.99 USD would be Amount: 1099, Currency: "USD".
type Money struct {
	Amount   int64  `yaml:"amount" json:"amount"`
	Currency string `yaml:"currency" json:"currency"`
}

// Plan describes a catalog entry mapping a sellable plan to the billing
// provider's price ID and display metadata. Entitlement resolution uses the
// price ID reported by the provider to recover the plan type and duration.
type Plan struct {
	ID          string   `yaml:"id" json:"id"`
	Type        PlanType `yaml:"type" json:"type"`
	Duration    Duration `yaml:"duration" json:"duration"`
	PriceID     string   `yaml:"price_id" json:"priceId"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Price       Money    `yaml:"price" json:"price"`
	Public      bool     `yaml:"public" json:"public"` // available for self-service signup
}

// Catalog is an immutable lookup over the configured plans.
type Catalog struct {
	byID      map[string]Plan
	byPriceID map[string]Plan
}

// Source loads the plan catalog at startup.
type Source interface {
	Load(ctx context.Context) ([]Plan, error)
}

// NewCatalog builds a catalog from plans, validating uniqueness of both plan
// IDs and provider price IDs.
func NewCatalog(plans []Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		byID:      make(map[string]Plan, len(plans)),
		byPriceID: make(map[string]Plan, len(plans)),
	}
	for _, p := range plans {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: plan with empty ID", ErrInvalidPlan)
		}
		if p.Type == "" || p.Type == PlanNone {
			return nil, fmt.Errorf("%w: plan %q must map to a sellable plan type", ErrInvalidPlan, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate plan ID %q", ErrInvalidPlan, p.ID)
		}
		c.byID[p.ID] = p

		if p.PriceID != "" {
			if _, dup := c.byPriceID[p.PriceID]; dup {
				return nil, fmt.Errorf("%w: duplicate price ID %q", ErrInvalidPlan, p.PriceID)
			}
			c.byPriceID[p.PriceID] = p
		}
	}
	return c, nil
}

// LoadCatalog loads plans from src and builds a catalog.
func LoadCatalog(ctx context.Context, src Source) (*Catalog, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plan catalog: %w", err)
	}
	return NewCatalog(plans)
}

// ByID returns the plan with the given catalog ID.
func (c *Catalog) ByID(id string) (Plan, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByPriceID returns the plan sold under the given provider price ID.
func (c *Catalog) ByPriceID(priceID string) (Plan, bool) {
	p, ok := c.byPriceID[priceID]
	return p, ok
}

// Public returns the plans available for self-service signup.
func (c *Catalog) Public() []Plan {
	out := make([]Plan, 0, len(c.byID))
	for _, p := range c.byID {
		if p.Public {
			out = append(out, p)
		}
	}
	return out
}

// FileSource loads the plan catalog from a YAML file.
//
// Example file:
//
//	plans:
//	  - id: growth-monthly
//	    type: growth
//	    duration: 1
//	    price_id: pri_01h9xq2e9
//	    name: Growth
//	    price: {amount: 2900, currency: USD}
//	    public: true
type FileSource struct {
	path string
}

// NewFileSource creates a plan source reading from the given YAML file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(_ context.Context) ([]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read plan catalog %s: %w", s.path, err)
	}

	var doc struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse plan catalog %s: %w", s.path, err)
	}
	return doc.Plans, nil
}

// InMemSource serves a fixed plan list; intended for tests.
type InMemSource struct {
	plans []Plan
}

// NewInMemSource returns an in-memory Source with a copy of the given plans.
// Panics if no plans are provided so the resolver always has a valid catalog.
func NewInMemSource(plans ...Plan) *InMemSource {
	if len(plans) == 0 {
		panic("at least one plan is required")
	}
	cp := make([]Plan, len(plans))
	copy(cp, plans)
	return &InMemSource{plans: cp}
}

func (s *InMemSource) Load(_ context.Context) ([]Plan, error) {
	cp := make([]Plan, len(s.plans))
	copy(cp, s.plans)
	return cp, nil
}
