package handlers

import (
	"net/http"

	"art-gallery-backend/internal/models"
	"art-gallery-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CommentsHandler struct {
	comments *services.CommentService
	log      logrus.FieldLogger
}

func NewCommentsHandler(comments *services.CommentService, log logrus.FieldLogger) *CommentsHandler {
	return &CommentsHandler{comments: comments, log: log}
}

// CreateComment godoc
// @Summary     Comment on a painting
// @Description Set parent_id to reply to an existing comment.
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CommentCreate true "Comment"
// @Success     201 {object} models.CommentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /comments [post]
func (h *CommentsHandler) CreateComment(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.CommentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewCommentResponse(comment))
}

// ListComments godoc
// @Summary     List comments on a painting
// @Description Returns approved top-level comments oldest first, or the replies to parent_id when given.
// @Tags        comments
// @Produce     json
// @Param       painting_id path  int true  "Painting ID"
// @Param       skip        query int false "Offset" default(0)
// @Param       limit       query int false "Page size (max 50)" default(20)
// @Param       parent_id   query int false "List replies to this comment"
// @Success     200 {array} models.CommentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /comments/painting/{painting_id} [get]
func (h *CommentsHandler) ListComments(c *gin.Context) {
	paintingID, err := pathID(c, "painting_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var q models.CommentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	ctx := c.Request.Context()
	var comments []models.Comment
	if q.ParentID != nil {
		comments, err = h.comments.ListReplies(ctx, paintingID, *q.ParentID, q.Skip, q.Limit)
	} else {
		comments, err = h.comments.ListTopLevelComments(ctx, paintingID, q.Skip, q.Limit)
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCommentResponses(comments))
}

// UpdateComment godoc
// @Summary     Edit a comment
// @Description Author only. Comments by someone else report 404.
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path int                  true "Comment ID"
// @Param       request body models.CommentUpdate true "New content"
// @Success     200 {object} models.CommentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /comments/{id} [put]
func (h *CommentsHandler) UpdateComment(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req models.CommentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), id, req.Content, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCommentResponse(comment))
}

// DeleteComment godoc
// @Summary     Delete a comment
// @Description Author only. Replies are deleted with their parent.
// @Tags        comments
// @Security    Bearer
// @Param       id path int true "Comment ID"
// @Success     204
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /comments/{id} [delete]
func (h *CommentsHandler) DeleteComment(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), id, userID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
