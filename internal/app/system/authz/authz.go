// Package authz is the per-route policy check.
//
// Each route declares the capability it needs:
//   - Public: anyone
//   - AdminOnly: callers whose stored role is admin
//   - OwnerOrAdmin: admins, or the caller the route is about (the route's
//     owner email equals the caller's email)
//
// The caller is identified by the X-User-Email header and the role is read
// from the users collection. In ModeOpen every request is allowed, which is
// how the API has always behaved; ModeEnforce rejects with ErrForbidden.
package authz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CallerHeader carries the caller's email.
const CallerHeader = "X-User-Email"

// ErrForbidden is returned (wrapped) when a policy check fails.
var ErrForbidden = errors.New("forbidden")

type Capability int

const (
	Public Capability = iota
	AdminOnly
	OwnerOrAdmin
)

func (c Capability) String() string {
	switch c {
	case Public:
		return "public"
	case AdminOnly:
		return "admin-only"
	case OwnerOrAdmin:
		return "owner-or-admin"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

type Mode string

const (
	ModeOpen    Mode = "open"
	ModeEnforce Mode = "enforce"
)

// ParseMode accepts "open" or "enforce" (case-insensitive, blank = open).
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeOpen, nil
	}
	if !lo.Contains([]Mode{ModeOpen, ModeEnforce}, m) {
		return "", fmt.Errorf("policy mode must be %q or %q, got %q", ModeOpen, ModeEnforce, s)
	}
	return m, nil
}

// RoleResolver looks up the stored role for a caller email.
type RoleResolver interface {
	RoleOf(ctx context.Context, email string) (role string, found bool, err error)
}

// OwnerFunc extracts the email a request is about, or "".
type OwnerFunc func(r *http.Request) string

// PathOwner reads the owner email from a chi URL parameter.
func PathOwner(param string) OwnerFunc {
	return func(r *http.Request) string { return chi.URLParam(r, param) }
}

// QueryOwner reads the owner email from a query parameter.
func QueryOwner(key string) OwnerFunc {
	return func(r *http.Request) string { return r.URL.Query().Get(key) }
}

// Policy applies capability checks to routes.
type Policy struct {
	Mode   Mode
	Roles  RoleResolver
	OnDeny func(w http.ResponseWriter, r *http.Request, err error)
	Log    *zap.Logger
}

// New constructs a Policy. onDeny writes the error response for rejected or
// failed checks.
func New(mode Mode, roles RoleResolver, onDeny func(http.ResponseWriter, *http.Request, error), logger *zap.Logger) *Policy {
	return &Policy{Mode: mode, Roles: roles, OnDeny: onDeny, Log: logger}
}

// Require returns middleware enforcing c. owner may be nil for capabilities
// other than OwnerOrAdmin.
func (p *Policy) Require(c Capability, owner OwnerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p.Mode != ModeEnforce || c == Public {
				next.ServeHTTP(w, r)
				return
			}
			if err := p.Check(r, c, owner); err != nil {
				p.Log.Info("policy check rejected request",
					zap.String("capability", c.String()),
					zap.String("caller", Caller(r)),
					zap.String("path", r.URL.Path),
					zap.Error(err))
				p.OnDeny(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Check decides whether r satisfies c regardless of Mode.
func (p *Policy) Check(r *http.Request, c Capability, owner OwnerFunc) error {
	if c == Public {
		return nil
	}
	caller := Caller(r)
	if caller == "" {
		return fmt.Errorf("%w: %s header required", ErrForbidden, CallerHeader)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, found, err := p.Roles.RoleOf(ctx, caller)
	if err != nil {
		return fmt.Errorf("resolve caller role: %w", err)
	}
	if found && role == models.RoleAdmin {
		return nil
	}

	if c == OwnerOrAdmin && owner != nil {
		if o := strings.TrimSpace(owner(r)); o != "" && strings.EqualFold(o, caller) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s required", ErrForbidden, c)
}

// Caller returns the trimmed caller email header.
func Caller(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(CallerHeader))
}
