package rbac

import (
	"context"
	"strings"
)

// grant is a parsed "resource:action" permission; either half may be "*".
type grant struct{ resource, action string }

func parseGrant(s string) grant {
	if s == "*" {
		return grant{"*", "*"}
	}
	res, act, ok := strings.Cut(s, ":")
	if !ok {
		return grant{resource: s}
	}
	return grant{res, act}
}

func (g grant) allows(want grant) bool {
	if g.resource != "*" && g.resource != want.resource {
		return false
	}
	return g.action == "*" || g.action == want.action
}

type Checker struct {
	grants map[string][]grant
}

// NewChecker compiles role -> permission lists; nil uses RolePermissions.
func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	c := &Checker{grants: make(map[string][]grant, len(rp))}
	for role, perms := range rp {
		for _, p := range perms {
			c.grants[role] = append(c.grants[role], parseGrant(p))
		}
	}
	return c
}

func (c *Checker) Has(role, perm string) bool {
	want := parseGrant(perm)
	for _, g := range c.grants[role] {
		if g.allows(want) {
			return true
		}
	}
	return false
}

// Granted filters AllPermissions down to what role holds.
func (c *Checker) Granted(role string) []string {
	out := []string{}
	for _, p := range AllPermissions {
		if c.Has(role, p) {
			out = append(out, p)
		}
	}
	return out
}

// Granted reports the default policy's permissions for role.
func Granted(role string) []string { return defaultChecker.Granted(role) }

type roleKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext is empty for requests that did not pass JWTMiddleware.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
