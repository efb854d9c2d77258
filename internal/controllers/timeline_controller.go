package controllers

import (
	"net/http"

	"github.com/Isotter/isotter_backend/internal/middlewares"
	"github.com/Isotter/isotter_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// TimelineController タイムラインに関するコントローラー
type TimelineController struct {
	timelineService services.TimelineService
}

// NewTimelineController TimelineControllerを作成
func NewTimelineController(timelineService services.TimelineService) *TimelineController {
	return &TimelineController{
		timelineService: timelineService,
	}
}

// CreatePostRequest 投稿作成リクエスト
type CreatePostRequest struct {
	Content string `json:"content"`
}

// DeletePostRequest 投稿削除リクエスト
type DeletePostRequest struct {
	PostID uint `json:"postId"`
}

// GetPosts 投稿一覧を取得
func (c *TimelineController) GetPosts(ctx *gin.Context) {
	posts, err := c.timelineService.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"posts": posts,
	})
}

// CreatePost 新しい投稿を作成。所有者はトークンの認証済みユーザー
func (c *TimelineController) CreatePost(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "認証が必要です"})
		return
	}

	var req CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "リクエストの形式が正しくありません"})
		return
	}

	post, err := c.timelineService.Create(user.ID, req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully!",
		"post":    post,
	})
}

// DeletePost 投稿を削除。投稿の所有者のみ削除できる
func (c *TimelineController) DeletePost(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "認証が必要です"})
		return
	}

	var req DeletePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "リクエストの形式が正しくありません"})
		return
	}

	deletedPost, err := c.timelineService.Delete(req.PostID, user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "post deleted successfully!",
		"deletedPost": deletedPost,
	})
}
