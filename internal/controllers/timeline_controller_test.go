package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Isotter/isotter_backend/internal/models"
	"github.com/Isotter/isotter_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// fakeTimelineService コントローラーテスト用のTimelineService
type fakeTimelineService struct {
	posts     []models.Post
	createErr error
	deleteErr error
	post      *models.Post
}

func (s *fakeTimelineService) List() ([]models.Post, error) {
	return s.posts, nil
}

func (s *fakeTimelineService) Create(userID uint, content string) (*models.Post, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.post, nil
}

func (s *fakeTimelineService) Delete(postID, userID uint) (*models.Post, error) {
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return s.post, nil
}

// setupTimelineRouter 認証済みユーザーをコンテキストに入れた状態でルートを組む
func setupTimelineRouter(svc services.TimelineService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewTimelineController(svc)

	r := gin.New()
	injectUser := func(ctx *gin.Context) {
		if user != nil {
			ctx.Set("user", user)
		}
		ctx.Next()
	}
	r.GET("/timeline/posts", c.GetPosts)
	r.POST("/timeline/post", injectUser, c.CreatePost)
	r.DELETE("/timeline/post", injectUser, c.DeletePost)
	return r
}

func TestGetPostsEmpty(t *testing.T) {
	r := setupTimelineRouter(&fakeTimelineService{posts: []models.Post{}}, nil)

	w := doJSON(t, r, http.MethodGet, "/timeline/posts", nil)
	// 投稿ゼロもエラーではなく200
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Posts == nil || len(resp.Posts) != 0 {
		t.Errorf("posts = %v, want 空の配列", resp.Posts)
	}
}

func TestCreatePostStatusCodes(t *testing.T) {
	user := &models.User{ID: 1, UserName: "alice1"}
	post := &models.Post{ID: 1, UserID: 1, Content: "hello", User: user}

	tests := []struct {
		name       string
		user       *models.User
		createErr  error
		wantStatus int
	}{
		{"成功", user, nil, http.StatusCreated},
		{"未認証", nil, nil, http.StatusUnauthorized},
		{"文字数違反", user, services.ErrInvalidContent, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupTimelineRouter(&fakeTimelineService{createErr: tt.createErr, post: post}, tt.user)

			w := doJSON(t, r, http.MethodPost, "/timeline/post", CreatePostRequest{Content: "hello"})
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestDeletePostStatusCodes(t *testing.T) {
	user := &models.User{ID: 1, UserName: "alice1"}
	post := &models.Post{ID: 1, UserID: 1, Content: "hello"}

	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{"成功", nil, http.StatusCreated},
		{"投稿が存在しない", services.ErrPostNotFound, http.StatusNotFound},
		{"所有者ではない", services.ErrPostForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupTimelineRouter(&fakeTimelineService{deleteErr: tt.deleteErr, post: post}, user)

			w := doJSON(t, r, http.MethodDelete, "/timeline/post", DeletePostRequest{PostID: 1})
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
