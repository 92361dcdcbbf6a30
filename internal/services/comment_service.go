package services

import (
	"context"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/store"
)

type CommentService struct {
	repo store.Repository
}

func NewCommentService(repo store.Repository) *CommentService {
	return &CommentService{repo: repo}
}

func commentNotFound() error {
	return apperr.NotFound("comment not found")
}

// CreateComment adds a comment or a reply. A reply's parent must exist but is
// not required to belong to the same painting.
func (s *CommentService) CreateComment(ctx context.Context, userID int64, in models.CommentCreate) (*models.Comment, error) {
	if _, err := s.repo.GetPainting(ctx, in.PaintingID); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if _, err := s.repo.GetComment(ctx, *in.ParentID); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil, apperr.NotFound("parent comment not found")
			}
			return nil, err
		}
	}

	c := &models.Comment{
		UserID:     userID,
		PaintingID: in.PaintingID,
		Content:    in.Content,
		ParentID:   in.ParentID,
		IsApproved: true,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	if user, err := s.repo.GetUserByID(ctx, userID); err == nil {
		c.User = user
	}
	return c, nil
}

func (s *CommentService) ListTopLevelComments(ctx context.Context, paintingID int64, skip, limit int) ([]models.Comment, error) {
	return s.list(ctx, paintingID, nil, skip, limit)
}

func (s *CommentService) ListReplies(ctx context.Context, paintingID, parentID int64, skip, limit int) ([]models.Comment, error) {
	return s.list(ctx, paintingID, &parentID, skip, limit)
}

func (s *CommentService) list(ctx context.Context, paintingID int64, parentID *int64, skip, limit int) ([]models.Comment, error) {
	if skip < 0 {
		return nil, apperr.Validation("skip must not be negative")
	}
	if limit < 1 || limit > 50 {
		return nil, apperr.Validation("limit must be between 1 and 50")
	}
	if _, err := s.repo.GetPainting(ctx, paintingID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, store.CommentListParams{
		PaintingID: paintingID,
		ParentID:   parentID,
		Limit:      limit,
		Offset:     skip,
	})
}

func (s *CommentService) owned(ctx context.Context, id, requesterID int64) (*models.Comment, error) {
	c, err := s.repo.GetComment(ctx, id)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}
	var ownerID int64
	if c != nil {
		ownerID = c.UserID
	}
	if err := HideForeign(CheckOwnership(c != nil, ownerID, requesterID), commentNotFound()); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, id int64, content string, requesterID int64) (*models.Comment, error) {
	c, err := s.owned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	c.Content = content
	if err := s.repo.UpdateComment(ctx, c); err != nil {
		return nil, err
	}
	if user, err := s.repo.GetUserByID(ctx, c.UserID); err == nil {
		c.User = user
	}
	return c, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id, requesterID int64) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.DeleteComment(ctx, id)
}
