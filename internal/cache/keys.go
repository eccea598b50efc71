package cache

import "fmt"

const draftPrefix = "authoring:draft:"

// DraftKey is the cache key of a single draft.
func DraftKey(id string) string {
	return draftPrefix + id
}

// UserDraftsPattern matches the cached draft lists of one user.
func UserDraftsPattern(userID string) string {
	return fmt.Sprintf("authoring:user:%s:drafts:*", userID)
}

// UserDraftsKey caches one page of a user's draft list.
func UserDraftsKey(userID string, page, size int) string {
	return fmt.Sprintf("authoring:user:%s:drafts:%d:%d", userID, page, size)
}
