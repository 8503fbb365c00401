// Package presets stores bookkeeping templates (förval) in presets.yaml.
package presets

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/verifikat-dev/verifikat/internal/model"
)

// FileName is the preset file at the ledger root.
const FileName = "presets.yaml"

// ErrUnknownPreset is returned by Get for an id that does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

type file struct {
	Presets []model.Preset `yaml:"presets"`
}

// Repository is a read-only set of presets keyed by id.
type Repository struct {
	presets []model.Preset
	byID    map[string]int
}

// NewRepository validates the presets and indexes them. Presets without an
// id get a random one.
func NewRepository(presets []model.Preset) (*Repository, error) {
	r := &Repository{byID: make(map[string]int, len(presets))}
	for _, p := range presets {
		p = clone(p)
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if err := Validate(p); err != nil {
			return nil, err
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate preset id %q", p.ID)
		}
		r.byID[p.ID] = len(r.presets)
		r.presets = append(r.presets, p)
	}
	return r, nil
}

// Load reads a preset file.
func Load(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	r, err := NewRepository(f.Presets)
	if err != nil {
		return nil, fmt.Errorf("loading presets: %w", err)
	}
	return r, nil
}

// Save writes the repository to path.
func (r *Repository) Save(path string) error {
	data, err := yaml.Marshal(file{Presets: r.presets})
	if err != nil {
		return fmt.Errorf("marshaling presets: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing presets: %w", err)
	}
	return nil
}

// Get returns a copy of the preset with the given id.
func (r *Repository) Get(id string) (model.Preset, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return clone(r.presets[i]), nil
}

// All returns copies of every preset, sorted by category then name.
func (r *Repository) All() []model.Preset {
	out := make([]model.Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, clone(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Search returns presets whose id, name or category contains text, case
// insensitively. Empty text matches everything.
func (r *Repository) Search(text string) []model.Preset {
	q := strings.ToLower(strings.TrimSpace(text))
	var out []model.Preset
	for _, p := range r.All() {
		if q == "" ||
			strings.Contains(strings.ToLower(p.ID), q) ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of presets.
func (r *Repository) Len() int {
	return len(r.presets)
}

// Validate checks a single preset.
func Validate(p model.Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset %s: name is required", p.ID)
	}
	if p.VatRate.IsNegative() || p.VatRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("preset %s: vat_rate %s must be between 0 and 1", p.ID, p.VatRate)
	}
	if len(p.Rows) == 0 {
		return fmt.Errorf("preset %s: no rows", p.ID)
	}
	for i, row := range p.Rows {
		if len(row.AccountCode) != 4 || model.ClassOf(row.AccountCode) == model.ClassUnknown {
			return fmt.Errorf("preset %s: row %d: invalid account %q", p.ID, i+1, row.AccountCode)
		}
		if !row.IsDebitRow && !row.IsCreditRow {
			return fmt.Errorf("preset %s: row %d: account %s is flagged for neither side", p.ID, i+1, row.AccountCode)
		}
	}
	return nil
}

func clone(p model.Preset) model.Preset {
	p.Rows = append([]model.TemplateRow(nil), p.Rows...)
	return p
}
