package services

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/Isotter/isotter_backend/internal/models"
	"github.com/Isotter/isotter_backend/internal/repository"
	"github.com/Isotter/isotter_backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateStatusInput プロフィール更新の入力
type UpdateStatusInput struct {
	TargetID   uint // 更新対象のユーザーID
	CallerID   uint // 認証済みユーザーのID
	UserName   string
	Email      string
	Password   string // 空なら変更しない
	Fruit      string
	File       multipart.File // nilなら画像は変更しない
	FileHeader *multipart.FileHeader
}

// UserService ユーザーに関するサービスインターフェース
type UserService interface {
	// Status userNameでユーザーを検索。見つからない場合は (nil, nil) を返す
	Status(userName string) (*models.User, error)
	UpdateStatus(input UpdateStatusInput) (*models.User, error)
}

// userService UserServiceの実装
type userService struct {
	userRepo     repository.UserRepository
	imageService ImageService
}

// NewUserService UserServiceを作成
func NewUserService(userRepo repository.UserRepository, imageService ImageService) UserService {
	return &userService{
		userRepo:     userRepo,
		imageService: imageService,
	}
}

// Status userNameでユーザーを取得
// 該当なしはエラーではなく、単にユーザーがいないという結果
func (s *userService) Status(userName string) (*models.User, error) {
	user, err := s.userRepo.FindByUserName(userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UpdateStatus プロフィールを更新
// 自分自身のプロフィールのみ更新できる
func (s *userService) UpdateStatus(input UpdateStatusInput) (*models.User, error) {
	// 権限チェック
	if input.CallerID != input.TargetID {
		return nil, ErrProfileForbidden
	}

	user, err := s.userRepo.FindByID(input.TargetID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// userName / email のバリデーションと重複チェック（自分自身は除外）
	userName := strings.TrimSpace(input.UserName)
	if !utils.ValidateUserName(userName) {
		return nil, ErrInvalidUserName
	}
	if existing, err := s.userRepo.FindByUserName(userName); err == nil && existing.ID != user.ID {
		return nil, ErrUserNameTaken
	}
	email := strings.TrimSpace(input.Email)
	if !utils.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}
	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing.ID != user.ID {
		return nil, ErrEmailTaken
	}

	// パスワードは指定された場合のみハッシュし直す
	if input.Password != "" {
		if !utils.ValidatePassword(input.Password) {
			return nil, ErrInvalidPassword
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	// 画像はアップロードされた場合のみ差し替える
	if input.File != nil && input.FileHeader != nil {
		thumb, err := s.imageService.Save(input.File, input.FileHeader)
		if err != nil {
			return nil, err
		}
		if thumb != "" {
			user.Thumb = thumb
		}
	}

	user.UserName = userName
	user.Email = email
	user.Fruit = input.Fruit

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}
