package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/versecrew/versecrew-backend-go/internal/domain/comment"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/domain/organization"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/repository/postgresql"
)

type CommentService struct {
	db *database.DB
	comment.Repository
	orgRepo      organization.OrganizationRepository
	memberRepo   member.MemberRepository
	notifService notification.Service
}

func NewCommentService(
	db *database.DB,
	commentRepository comment.Repository,
	organizationRepository organization.OrganizationRepository,
	memberRepository member.MemberRepository,
	notifService notification.Service,
) comment.Service {
	return &CommentService{
		db:           db,
		Repository:   commentRepository,
		orgRepo:      organizationRepository,
		memberRepo:   memberRepository,
		notifService: notifService,
	}
}

// Post leaves a comment on an org page. A rated comment counts toward the
// org's rating aggregate, and a user gets exactly one of those per org.
func (s *CommentService) Post(ctx context.Context, orgID, authorID string, req *comment.PostCommentRequest) (*comment.CommentResponse, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if org.IsArchived() {
		return nil, organization.ErrOrganizationArchived
	}

	if req.Rating != nil {
		rated, err := s.Repository.HasRatedComment(ctx, orgID, authorID, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing rating: %w", err)
		}
		if rated {
			return nil, comment.ErrAlreadyRated
		}
	}

	c := &comment.Comment{
		OrganizationID: orgID,
		AuthorID:       authorID,
		Body:           req.Body,
		Rating:         req.Rating,
	}

	var created *comment.Comment
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		var err error
		created, err = s.Repository.Create(txCtx, c)
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		if req.Rating != nil {
			return s.refreshAggregate(txCtx, orgID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, org, created)

	resp := comment.ToResponse(created)
	return &resp, nil
}

func (s *CommentService) List(ctx context.Context, orgID string, filter comment.ListCommentsFilter) (*comment.ListCommentsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	comments, total, err := s.Repository.ListByOrganization(ctx, orgID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	responses := make([]comment.CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = comment.ToResponse(c)
	}

	return &comment.ListCommentsResponse{
		Comments: responses,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}, nil
}

func (s *CommentService) Update(ctx context.Context, orgID, commentID, userID string, req *comment.UpdateCommentRequest) (*comment.CommentResponse, error) {
	c, err := s.Repository.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if c.OrganizationID != orgID {
		return nil, comment.ErrCommentNotFound
	}
	if c.AuthorID != userID {
		return nil, comment.ErrNotAuthor
	}

	if req.Rating != nil && c.Rating == nil {
		rated, err := s.Repository.HasRatedComment(ctx, c.OrganizationID, userID, &c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing rating: %w", err)
		}
		if rated {
			return nil, comment.ErrAlreadyRated
		}
	}

	ratingChanged := !ratingsEqual(c.Rating, req.Rating)

	now := time.Now()
	c.Body = req.Body
	c.Rating = req.Rating
	c.EditedAt = &now

	var updated *comment.Comment
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		var err error
		updated, err = s.Repository.Update(txCtx, c)
		if err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}

		if ratingChanged {
			return s.refreshAggregate(txCtx, c.OrganizationID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := comment.ToResponse(updated)
	return &resp, nil
}

// Delete removes a comment. Authors always can; anyone else needs the
// moderator flag, which the handler grants from the permission table.
func (s *CommentService) Delete(ctx context.Context, orgID, commentID, userID string, moderator bool) error {
	c, err := s.Repository.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if c.OrganizationID != orgID {
		return comment.ErrCommentNotFound
	}
	if c.AuthorID != userID && !moderator {
		return comment.ErrNotAuthor
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if err := s.Repository.Delete(txCtx, commentID); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		if c.Rating != nil {
			return s.refreshAggregate(txCtx, c.OrganizationID)
		}
		return nil
	})
}

// refreshAggregate recomputes the org's rating count and average from the
// surviving rated comments and stores the result on the org row.
func (s *CommentService) refreshAggregate(ctx context.Context, orgID string) error {
	agg, err := s.Repository.RatingAggregate(ctx, orgID)
	if err != nil {
		return fmt.Errorf("failed to recompute rating aggregate: %w", err)
	}
	if err := s.orgRepo.SetRatingAggregate(ctx, orgID, agg.Count, agg.Average); err != nil {
		return fmt.Errorf("failed to store rating aggregate: %w", err)
	}
	return nil
}

func (s *CommentService) notifyOwner(ctx context.Context, org organization.Organization, c *comment.Comment) {
	owners, err := s.memberRepo.ListUserIDsByRoles(ctx, org.ID, []member.Role{member.RoleOwner})
	if err != nil {
		slog.Error("failed to resolve org owner for notification", "org_id", org.ID, "error", err)
		return
	}

	for _, ownerID := range owners {
		if ownerID == c.AuthorID {
			continue
		}
		err := s.notifService.QueueNotification(ctx, notification.CreateNotificationRequest{
			OrganizationID: org.ID,
			RecipientID:    ownerID,
			SenderID:       &c.AuthorID,
			Type:           notification.TypeCommentPosted,
			Title:          "New comment",
			Message:        fmt.Sprintf("Someone commented on %s.", org.Name),
			Data:           map[string]interface{}{"comment_id": c.ID},
		})
		if err != nil {
			slog.Error("failed to queue comment notification", "error", err)
		}
	}
}

func ratingsEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
