package state

import "github.com/user/snsclone-go/models"

// BuildLikeToggle computes the request that toggles actor's like on post.
//
// The rebuilt list drops actor if present and copies every other liker through.
// Adding a like, or removing one while others remain, is a partial update carrying
// only the list. Removing the last remaining like is a full replace that resends the
// title, which the backend requires on PUT but not on PATCH.
func BuildLikeToggle(post models.Post, actor int64) models.LikeUpdate {
	rebuilt := make([]int64, 0, len(post.LikedBy)+1)
	overlap := false
	for _, ref := range post.LikedBy {
		if ref == actor {
			overlap = true
			continue
		}
		rebuilt = append(rebuilt, ref)
	}

	switch {
	case !overlap:
		return models.LikeUpdate{PostID: post.ID, Mode: models.LikePartial, LikedBy: append(rebuilt, actor)}
	case len(rebuilt) == 0:
		return models.LikeUpdate{PostID: post.ID, Mode: models.LikeFull, LikedBy: rebuilt, Title: post.Title}
	default:
		return models.LikeUpdate{PostID: post.ID, Mode: models.LikePartial, LikedBy: rebuilt}
	}
}
