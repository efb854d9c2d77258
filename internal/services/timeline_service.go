package services

import (
	"errors"
	"unicode/utf8"

	"github.com/Isotter/isotter_backend/internal/models"
	"github.com/Isotter/isotter_backend/internal/repository"

	"gorm.io/gorm"
)

// maxContentLength 投稿の最大文字数
const maxContentLength = 140

// TimelineService タイムラインに関するサービスインターフェース
type TimelineService interface {
	List() ([]models.Post, error)
	Create(userID uint, content string) (*models.Post, error)
	Delete(postID, userID uint) (*models.Post, error)
}

// timelineService TimelineServiceの実装
type timelineService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewTimelineService TimelineServiceを作成
func NewTimelineService(postRepo repository.PostRepository, userRepo repository.UserRepository) TimelineService {
	return &timelineService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// List 投稿一覧を取得
// 投稿が1件もないのは正常な状態なので空のスライスを返す
func (s *timelineService) List() ([]models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// Create 新しい投稿を作成。所有者は認証済みユーザー
func (s *timelineService) Create(userID uint, content string) (*models.Post, error) {
	// 文字数ベースで1〜140文字
	length := utf8.RuneCountInString(content)
	if length < 1 || length > maxContentLength {
		return nil, ErrInvalidContent
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	// レスポンスに投稿者情報を含める
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	post.User = user

	return post, nil
}

// Delete 投稿を削除。投稿の所有者のみ削除できる
func (s *timelineService) Delete(postID, userID uint) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// 権限チェック
	if post.UserID != userID {
		return nil, ErrPostForbidden
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return nil, err
	}

	return post, nil
}
