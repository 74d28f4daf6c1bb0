package comment

import "context"

// By-id operations carry the organization id from the URL scope; a comment
// on a different organization's page is reported as not found.
type Service interface {
	Post(ctx context.Context, orgID, authorID string, req *PostCommentRequest) (*CommentResponse, error)
	List(ctx context.Context, orgID string, filter ListCommentsFilter) (*ListCommentsResponse, error)
	Update(ctx context.Context, orgID, commentID, userID string, req *UpdateCommentRequest) (*CommentResponse, error)
	// Delete removes a comment. Moderators pass moderator=true to
	// delete comments they did not author.
	Delete(ctx context.Context, orgID, commentID, userID string, moderator bool) error
}
