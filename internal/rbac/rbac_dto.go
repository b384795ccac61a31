package rbac

import "go-teamplanner/internal/domain"

// EnforceRequest aliases the shared domain type so Service satisfies the
// middleware's RBACService interface directly.
type EnforceRequest = domain.EnforceRequest

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
