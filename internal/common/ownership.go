package common

import (
	"context"

	"github.com/google/uuid"
)

// OwnerLookup resolves the id of the user owning a resource.
// It returns an error wrapping ErrRecordNotFound when the resource does not exist.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// RequireOwner fails with notOwned unless principal owns the resource identified by id.
// An empty principal is rejected before the resource is looked up.
func RequireOwner(ctx context.Context, lookup OwnerLookup, principal, id uuid.UUID, notOwned error) error {
	if principal == uuid.Nil {
		return Forbidden("User not authenticated")
	}

	owner, err := lookup.OwnerOf(ctx, id)
	if err != nil {
		return err
	}

	if owner != principal {
		return notOwned
	}

	return nil
}
