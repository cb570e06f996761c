package instagram

import (
	"context"

	"github.com/leadscope/mcpgram/pkg/pagination"
)

// Client is the narrow capability the analytical core requires from the
// provider. The core never sees the wire protocol; implementations classify
// remote failures into the apperr sentinel errors so callers can react by
// kind (not-found, auth challenge, throttling) without string matching.
//
// The four feed constructors return stateful cursor feeds: each NextPage call
// advances the feed's server-side cursor, so a feed instance must be consumed
// sequentially and not shared across operations.
type Client interface {
	// Authenticate performs a login for the credentials under the given
	// device identity. It is called lazily by the session manager.
	Authenticate(ctx context.Context, creds Credentials, deviceID string) error

	// ResolveMediaByURL maps a public post URL to the provider's opaque
	// media identifier.
	ResolveMediaByURL(ctx context.Context, url string) (string, error)

	// UserIDByHandle maps a handle to the provider's opaque user identifier.
	UserIDByHandle(ctx context.Context, handle string) (string, error)

	// UserInfo fetches the full profile for an opaque user identifier.
	UserInfo(ctx context.Context, userID string) (UserProfile, error)

	MediaComments(mediaID string) pagination.CursorFeed[Comment]
	MediaLikers(mediaID string) pagination.CursorFeed[UserProfile]
	AccountFollowers(userID string) pagination.CursorFeed[UserProfile]
	AccountPosts(userID string) pagination.CursorFeed[Post]
}
