package masks

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	app_errors "parley/backend/internal/errors"
	"parley/backend/internal/model"
)

//go:embed default_masks.toml
var defaultMasks []byte

type catalogFile struct {
	Masks []model.Mask `toml:"masks"`
}

// Catalog is the read-only set of masks offered to new sessions.
type Catalog struct {
	masks []model.Mask
}

// Load reads the catalog at path, or the built-in set when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultMasks
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read masks file %s: %w", path, err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("could not decode masks: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Masks))
	for i := range f.Masks {
		m := &f.Masks[i]
		if m.ID == "" || m.Title == "" {
			return nil, fmt.Errorf("%w: mask %d needs an id and a title", app_errors.ErrValidation, i)
		}
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate mask id %q", app_errors.ErrValidation, m.ID)
		}
		seen[m.ID] = struct{}{}
		for _, msg := range m.Messages {
			if !msg.Role.Valid() {
				return nil, fmt.Errorf("%w: mask %q has a message with role %q", app_errors.ErrValidation, m.ID, msg.Role)
			}
		}
	}
	return &Catalog{masks: f.Masks}, nil
}

func (c *Catalog) List() []model.Mask {
	out := make([]model.Mask, 0, len(c.masks))
	for i := range c.masks {
		out = append(out, *c.masks[i].Clone())
	}
	return out
}

func (c *Catalog) Get(id string) (*model.Mask, error) {
	for i := range c.masks {
		if c.masks[i].ID == id {
			return c.masks[i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: mask %s", app_errors.ErrNotFound, id)
}

// Instantiate copies the mask's seed messages with fresh ids so the session
// never shares message identity with the catalog or with other sessions.
// Seed timestamps are spaced a nanosecond apart to keep their order stable.
func Instantiate(m *model.Mask, now time.Time) []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(m.Messages))
	for i, seed := range m.Messages {
		out = append(out, model.ChatMessage{
			ID:        uuid.NewString(),
			Role:      seed.Role,
			Content:   seed.Content,
			CreatedAt: now.Add(time.Duration(i)),
		})
	}
	return out
}
