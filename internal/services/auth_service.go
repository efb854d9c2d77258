package services

import (
	"errors"
	"log"
	"time"

	"github.com/Isotter/isotter_backend/internal/config"
	"github.com/Isotter/isotter_backend/internal/models"
	"github.com/Isotter/isotter_backend/internal/repository"
	"github.com/Isotter/isotter_backend/internal/utils"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost パスワードハッシュのコストファクター
const bcryptCost = 12

// resetTokenTTL リセットトークンの有効期間
const resetTokenTTL = time.Hour

// AuthService 認証に関するサービスインターフェース
type AuthService interface {
	Register(userName, email, password, confirmPassword string) (*models.User, error)
	Login(userName, password string) (*models.User, string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetUserFromToken(tokenString string) (*models.User, error)
	ForgotPassword(email string) (*models.User, error)
	ConfirmResetToken(token string) (bool, error)
	ResetPassword(token, password string) error
}

// authService AuthServiceの実装
type authService struct {
	userRepo    repository.UserRepository
	mailService MailService
	config      *config.Config
}

// NewAuthService AuthServiceを作成
func NewAuthService(userRepo repository.UserRepository, mailService MailService, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		mailService: mailService,
		config:      cfg,
	}
}

// Claims JWTのペイロード
type Claims struct {
	Email    string `json:"email"`
	UserID   uint   `json:"userId"`
	UserName string `json:"userName"`
	jwt.StandardClaims
}

// Register ユーザー登録
func (s *authService) Register(userName, email, password, confirmPassword string) (*models.User, error) {
	// フィールドのバリデーション（最初に違反したルールを返す）
	if !utils.ValidateUserName(userName) {
		return nil, ErrInvalidUserName
	}
	if _, err := s.userRepo.FindByUserName(userName); err == nil {
		return nil, ErrUserNameTaken
	}
	if !utils.ValidateEmail(email) {
		return nil, ErrInvalidEmail
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	if !utils.ValidatePassword(password) {
		return nil, ErrInvalidPassword
	}
	if password != confirmPassword {
		return nil, ErrPasswordConfirm
	}

	// パスワードをハッシュ化
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserName: userName,
		Email:    email,
		Password: string(hashedPassword),
		Thumb:    models.DefaultThumb,
	}

	// 事前チェックをすり抜けた同時登録はユニークインデックスが弾く
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	// 登録完了メールはレスポンスを待たせず送る。失敗してもログのみ
	go func() {
		if err := s.mailService.SendWelcome(user.Email, user.UserName); err != nil {
			log.Printf("登録完了メールの送信に失敗しました: %v", err)
		}
	}()

	return user, nil
}

// Login ログイン
func (s *authService) Login(userName, password string) (*models.User, string, error) {
	// ユーザーを検索
	user, err := s.userRepo.FindByUserName(userName)
	if err != nil {
		return nil, "", ErrUserNotFound
	}

	// パスワードを検証
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrWrongPassword
	}

	// JWTトークンを生成
	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ValidateToken トークンを検証
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetUserFromToken トークンからユーザーを取得
func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ForgotPassword パスワード再設定トークンを発行し、メールを送信
func (s *authService) ForgotPassword(email string) (*models.User, error) {
	// メールアドレスが登録されているか確認
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}

	// ランダムトークンを生成して保存
	token, err := utils.GenerateResetToken()
	if err != nil {
		return nil, err
	}
	expiration := time.Now().Add(resetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpiration = &expiration
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	// 再設定URLをメールで案内。こちらは失敗をクライアントに返す
	if err := s.mailService.SendPasswordReset(user.Email, token); err != nil {
		return nil, err
	}

	return user, nil
}

// ConfirmResetToken トークンが有効かどうかを確認
// 見つからないのは正常な結果なのでエラーにはしない
func (s *authService) ConfirmResetToken(token string) (bool, error) {
	_, err := s.userRepo.FindByResetToken(token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ResetPassword トークンでパスワードを再設定し、トークンを無効化
func (s *authService) ResetPassword(token, password string) error {
	if !utils.ValidatePassword(password) {
		return ErrInvalidPassword
	}

	// 期限内のトークンを持つユーザーを検索
	user, err := s.userRepo.FindByResetToken(token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenExpired
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	// トークンは一度使ったらクリアして再利用を防ぐ
	user.Password = string(hashedPassword)
	user.ResetToken = nil
	user.ResetTokenExpiration = nil

	return s.userRepo.Update(user)
}

// generateToken JWTトークンを生成
func (s *authService) generateToken(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.config.Auth.TokenExpiry)

	claims := &Claims{
		Email:    user.Email,
		UserID:   user.ID,
		UserName: user.UserName,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
