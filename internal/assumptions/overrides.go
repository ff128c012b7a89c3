package assumptions

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load builds an assumption set from the defaults with a TOML overrides
// file decoded on top. An empty path returns the defaults unchanged. The
// merged result is validated before it is returned, so an overrides file
// can never produce an unusable store.
func Load(path string) (*Assumptions, error) {
	a := Default()
	if path == "" {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		return a, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assumptions overrides: %w", err)
	}

	// Decoding onto the defaults leaves unmentioned fields at their
	// default values.
	if err := toml.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("failed to parse assumptions overrides %s: %w", path, err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}
