package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the casbin model from disk. Policies are loaded per
// company at enforcement time, not here.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
