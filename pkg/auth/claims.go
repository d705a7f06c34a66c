package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims accepted by the sentinel APIs. The
// subject identifies the calling system or operator.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// Role constants
const (
	RoleAdmin     = "admin"
	RoleOperator  = "operator"
	RoleAnalyst   = "analyst"
	RoleAPIClient = "api_client"
)
