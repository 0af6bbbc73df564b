// Package config loads binary configuration from the environment.
//
// Every binary owns one variable prefix (SWARM_, PROFILE_), so struct tags
// name only the suffix and the same struct can be embedded under different
// prefixes.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Validator is implemented by configurations that check their values after
// parsing.
type Validator interface {
	Validate() error
}

// ParseEnv loads the variables starting with prefix into target, which must be
// a pointer to a struct tagged with `env` and `envDefault`. When target is a
// Validator, its Validate method runs after a successful parse.
func ParseEnv(prefix string, target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse %s* env: %w", prefix, err)
	}
	if v, ok := target.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("invalid %s* env: %w", prefix, err)
		}
	}
	return nil
}
