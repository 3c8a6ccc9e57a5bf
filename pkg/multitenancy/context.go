package multitenancy

import (
	"context"
	"errors"
)

type contextKey string

const orgIDKey contextKey = "org_id"

// ErrNoOrgID is returned when the context carries no organization ID
var ErrNoOrgID = errors.New("no organization ID in context")

// WithOrgID returns a context scoped to the given organization
func WithOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, orgIDKey, orgID)
}

// GetOrgID extracts the organization ID from the context
func GetOrgID(ctx context.Context) (string, error) {
	orgID, ok := ctx.Value(orgIDKey).(string)
	if !ok || orgID == "" {
		return "", ErrNoOrgID
	}
	return orgID, nil
}

// HasOrgID reports whether the context carries an organization ID
func HasOrgID(ctx context.Context) bool {
	_, err := GetOrgID(ctx)
	return err == nil
}
