package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/leadscope/mcpgram/internal/instagram"
	"github.com/leadscope/mcpgram/pkg/pagination"
)

// sliceFeed serves a fixed slice in pages of pageSize.
type sliceFeed[T any] struct {
	items    []T
	pageSize int
	offset   int
	err      error
}

func (f *sliceFeed[T]) NextPage(ctx context.Context) (pagination.PageBatch[T], error) {
	if f.err != nil {
		return pagination.PageBatch[T]{}, f.err
	}
	size := f.pageSize
	if size <= 0 {
		size = len(f.items)
	}
	end := f.offset + size
	if end > len(f.items) {
		end = len(f.items)
	}
	batch := pagination.PageBatch[T]{
		Items:   f.items[f.offset:end],
		HasMore: end < len(f.items),
	}
	f.offset = end
	return batch, nil
}

// fakeClient implements instagram.Client over in-memory fixtures.
type fakeClient struct {
	comments  []instagram.Comment
	likers    []instagram.UserProfile
	followers []instagram.UserProfile
	posts     []instagram.Post

	handleIDs  map[string]string
	handleErr  map[string]error
	profiles   map[string]instagram.UserProfile
	profileErr map[string]error

	infoCalls []string
}

func (f *fakeClient) Authenticate(ctx context.Context, creds instagram.Credentials, deviceID string) error {
	return nil
}

func (f *fakeClient) ResolveMediaByURL(ctx context.Context, url string) (string, error) {
	return "media-1", nil
}

func (f *fakeClient) UserIDByHandle(ctx context.Context, handle string) (string, error) {
	if err, ok := f.handleErr[handle]; ok {
		return "", err
	}
	if id, ok := f.handleIDs[handle]; ok {
		return id, nil
	}
	return "", fmt.Errorf("handle %q: no fixture", handle)
}

func (f *fakeClient) UserInfo(ctx context.Context, userID string) (instagram.UserProfile, error) {
	f.infoCalls = append(f.infoCalls, userID)
	if err, ok := f.profileErr[userID]; ok {
		return instagram.UserProfile{}, err
	}
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return instagram.UserProfile{}, fmt.Errorf("user %q: no fixture", userID)
}

func (f *fakeClient) MediaComments(mediaID string) pagination.CursorFeed[instagram.Comment] {
	return &sliceFeed[instagram.Comment]{items: f.comments}
}

func (f *fakeClient) MediaLikers(mediaID string) pagination.CursorFeed[instagram.UserProfile] {
	return &sliceFeed[instagram.UserProfile]{items: f.likers}
}

func (f *fakeClient) AccountFollowers(userID string) pagination.CursorFeed[instagram.UserProfile] {
	return &sliceFeed[instagram.UserProfile]{items: f.followers}
}

func (f *fakeClient) AccountPosts(userID string) pagination.CursorFeed[instagram.Post] {
	return &sliceFeed[instagram.Post]{items: f.posts}
}

func newTestEngine(client *fakeClient) *Engine {
	return NewEngine(client, pagination.Pacing{}, DefaultCaps(), nil)
}

func user(pk, username string) instagram.UserProfile {
	return instagram.UserProfile{PK: pk, Username: username}
}

func comment(pk, username, text string) instagram.Comment {
	return instagram.Comment{PK: "c-" + pk + "-" + text, Text: text, User: user(pk, username)}
}

func post(pk string, likes, comments int, takenAt time.Time) instagram.Post {
	return instagram.Post{PK: pk, Shortcode: "sc" + pk, LikeCount: likes, CommentCount: comments, TakenAt: takenAt}
}

func intp(n int) *int { return &n }
