package common

import "fmt"

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate the configuration.
func (c *Config) Validate() error {
	if len(c.Networks) == 0 {
		return fmt.Errorf("config: at least one network must be defined")
	}

	seen := make(map[NetworkIdentifier]struct{})
	localCount := 0
	for _, opt := range c.Networks {
		if opt.Identifier == "" {
			return fmt.Errorf("config: network %q has an empty identifier", opt.Title)
		}
		if _, dup := seen[opt.Identifier]; dup {
			return fmt.Errorf("config: duplicate network identifier %q", opt.Identifier)
		}
		seen[opt.Identifier] = struct{}{}

		if len(opt.RPCs) == 0 {
			return fmt.Errorf("config: network %q has no RPC endpoint", opt.Identifier)
		}
		if opt.IsLocal {
			localCount++
		}
	}
	if localCount > 1 {
		return fmt.Errorf("config: at most one network may be marked local, got %d", localCount)
	}

	if _, ok := seen[c.UseNetwork]; !ok {
		return fmt.Errorf("config: network %q not found", c.UseNetwork)
	}
	return nil
}
