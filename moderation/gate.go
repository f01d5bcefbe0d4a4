package moderation

import (
	"context"
	"fmt"

	"github.com/map-mark/api-go/models"
)

// Capability is the proof of authorization returned by the gate.
type Capability struct {
	ProfileID string
	Role      string
}

// Gate resolves a subject's stored role and grants or denies access to
// an operation. It is stateless and read-only.
type Gate struct {
	Profiles ProfileStore
}

func NewGate(profiles ProfileStore) *Gate {
	return &Gate{Profiles: profiles}
}

// Authorize grants when the stored role is admin, or when it equals
// the required role. Unknown or empty subjects fail with
// ErrUnauthorized, insufficient roles with ErrForbidden.
func (g *Gate) Authorize(ctx context.Context, subjectID, requiredRole string) (*Capability, error) {
	if subjectID == "" {
		return nil, ErrUnauthorized
	}

	profile, err := g.Profiles.GetProfile(ctx, subjectID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("look up subject role: %w", err)
	}

	if profile.Role == models.RoleAdmin || profile.Role == requiredRole {
		return &Capability{ProfileID: profile.ID, Role: profile.Role}, nil
	}

	return nil, ErrForbidden
}
