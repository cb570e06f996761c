package resolver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/leadscope/mcpgram/pkg/apperr"
	"github.com/leadscope/mcpgram/pkg/validation"
)

// Kind tags a parsed target as a post or an account.
type Kind string

const (
	KindPost    Kind = "post"
	KindAccount Kind = "account"
)

// Target is a parsed, validated input string. Immutable once parsed.
type Target struct {
	Kind      Kind
	URL       string // post targets only
	Shortcode string // post targets only
	Handle    string // account targets only
}

// Resolution records how an identity was obtained. Fallback resolutions are
// degraded: the shortcode may not be accepted by feed sources that require
// the numeric media id, so callers surface the outcome instead of treating
// both paths as equivalent successes.
type Resolution string

const (
	ResolvedDirectly   Resolution = "direct"
	ResolvedByFallback Resolution = "fallback"
)

// Identity is the provider-side identifier for a target.
type Identity struct {
	Kind       Kind
	ID         string
	Resolution Resolution
}

// ParseTarget classifies input as a post URL or an account handle.
func ParseTarget(input string) (Target, error) {
	if code, ok := validation.PostShortcode(input); ok {
		return Target{Kind: KindPost, URL: input, Shortcode: code}, nil
	}
	if validation.IsHandle(input) {
		return Target{Kind: KindAccount, Handle: input}, nil
	}
	return Target{}, fmt.Errorf("%s: %q is neither a post URL nor a handle", apperr.InvalidInput, input)
}

// Lookup is the slice of the provider client the resolver needs.
type Lookup interface {
	ResolveMediaByURL(ctx context.Context, url string) (string, error)
	UserIDByHandle(ctx context.Context, handle string) (string, error)
}

// Resolver converts parsed targets into provider identities.
type Resolver struct {
	client Lookup
}

// New constructs a Resolver over the given lookup capability.
func New(client Lookup) *Resolver {
	return &Resolver{client: client}
}

// Identify maps a target to its opaque provider identifier.
//
// Accounts fail hard on lookup errors. Posts fall back to the shortcode when
// the URL lookup fails for any reason; the degraded outcome is logged and
// carried on the returned Identity.
func (r *Resolver) Identify(ctx context.Context, t Target) (Identity, error) {
	switch t.Kind {
	case KindAccount:
		id, err := r.client.UserIDByHandle(ctx, t.Handle)
		if err != nil {
			return Identity{}, err
		}
		return Identity{Kind: KindAccount, ID: id, Resolution: ResolvedDirectly}, nil

	case KindPost:
		id, err := r.client.ResolveMediaByURL(ctx, t.URL)
		if err != nil {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("shortcode", t.Shortcode).
				Msg("resolver: media lookup failed, falling back to shortcode")
			return Identity{Kind: KindPost, ID: t.Shortcode, Resolution: ResolvedByFallback}, nil
		}
		return Identity{Kind: KindPost, ID: id, Resolution: ResolvedDirectly}, nil

	default:
		return Identity{}, fmt.Errorf("%s: unknown target kind %q", apperr.InvalidInput, t.Kind)
	}
}
