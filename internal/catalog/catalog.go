package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"asanaflow/yoga-app/internal/domain"
)

// Catalog is the immutable set of poses available for session generation.
// It is loaded once at startup and shared read-only afterwards.
type Catalog struct {
	poses []domain.PoseRecord
	byID  map[string]domain.PoseRecord
}

// New builds a catalog from decoded pose records, validating catalog
// invariants: unique ids and positive base durations.
func New(poses []domain.PoseRecord) (*Catalog, error) {
	byID := make(map[string]domain.PoseRecord, len(poses))
	for _, p := range poses {
		if p.ID == "" {
			return nil, fmt.Errorf("pose %q has an empty id", p.EnglishName)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate pose id %q", p.ID)
		}
		if p.BaseDurationSec <= 0 {
			return nil, fmt.Errorf("pose %q has non-positive duration %d", p.ID, p.BaseDurationSec)
		}
		byID[p.ID] = p
	}
	return &Catalog{poses: poses, byID: byID}, nil
}

// Empty returns a catalog with no poses. Generation against it fails;
// the server falls back to it when the catalog cannot be loaded.
func Empty() *Catalog {
	c, _ := New(nil)
	return c
}

// Load fetches and validates the catalog from the given source.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	poses, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return New(poses)
}

// Len returns the number of poses in the catalog.
func (c *Catalog) Len() int { return len(c.poses) }

// IsEmpty reports whether the catalog holds no poses.
func (c *Catalog) IsEmpty() bool { return len(c.poses) == 0 }

// All returns a copy of the pose list in catalog order.
func (c *Catalog) All() []domain.PoseRecord {
	out := make([]domain.PoseRecord, len(c.poses))
	copy(out, c.poses)
	return out
}

// ByID looks up a pose by its unique id.
func (c *Catalog) ByID(id string) (domain.PoseRecord, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByCategory returns all poses of the given category.
func (c *Catalog) ByCategory(category domain.Category) []domain.PoseRecord {
	var out []domain.PoseRecord
	for _, p := range c.poses {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search matches the query case-insensitively against english name,
// sanskrit name, and target tags.
func (c *Catalog) Search(query string) []domain.PoseRecord {
	q := strings.ToLower(query)
	var out []domain.PoseRecord
	for _, p := range c.poses {
		if strings.Contains(strings.ToLower(p.EnglishName), q) ||
			strings.Contains(strings.ToLower(p.SanskritName), q) ||
			anyTargetContains(p.Targets, q) {
			out = append(out, p)
		}
	}
	return out
}

func anyTargetContains(targets []string, q string) bool {
	for _, t := range targets {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// decodePoses reads the catalog wire format: a JSON array of pose objects
// with snake_case field names (name_english, duration_s, ...).
func decodePoses(r io.Reader) ([]domain.PoseRecord, error) {
	var poses []domain.PoseRecord
	if err := json.NewDecoder(r).Decode(&poses); err != nil {
		return nil, fmt.Errorf("decoding pose catalog: %w", err)
	}
	return poses, nil
}
