package controllers

import (
	"net/http"
	"strconv"

	"github.com/Isotter/isotter_backend/internal/middlewares"
	"github.com/Isotter/isotter_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminController 認証・アカウント管理に関するコントローラー
type AdminController struct {
	authService services.AuthService
	userService services.UserService
}

// NewAdminController AdminControllerを作成
func NewAdminController(authService services.AuthService, userService services.UserService) *AdminController {
	return &AdminController{
		authService: authService,
		userService: userService,
	}
}

// SignupRequest ユーザー登録リクエスト
type SignupRequest struct {
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest ログインリクエスト
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// ForgotPasswordRequest パスワード再設定の受付リクエスト
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest パスワード再設定リクエスト
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// Signup ユーザー登録
func (c *AdminController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "リクエストの形式が正しくありません"})
		return
	}

	user, err := c.authService.Register(req.UserName, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "user successfully created",
		"user":    user.UserName,
	})
}

// Login ログイン
func (c *AdminController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "リクエストの形式が正しくありません"})
		return
	}

	user, token, err := c.authService.Login(req.UserName, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"userId":   user.ID,
		"userName": user.UserName,
	})
}

// ForgotPassword パスワード再設定を受け付けてメールを送信
func (c *AdminController) ForgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "リクエストの形式が正しくありません"})
		return
	}

	user, err := c.authService.ForgotPassword(req.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"email": user.Email,
	})
}

// ConfirmResetToken トークンが有効かどうかを返す
// 無効でもエラーではなく isValid: false を返す
func (c *AdminController) ConfirmResetToken(ctx *gin.Context) {
	token := ctx.Param("token")

	isValid, err := c.authService.ConfirmResetToken(token)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"isValid": isValid,
	})
}

// ResetPassword トークンでパスワードを再設定
func (c *AdminController) ResetPassword(ctx *gin.Context) {
	token := ctx.Param("token")

	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "リクエストの形式が正しくありません"})
		return
	}

	if err := c.authService.ResetPassword(token, req.Password); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Password changed!",
	})
}

// ShowUserStatus userNameでユーザー情報を取得
// 該当なしはエラーではなく user: null を返す
func (c *AdminController) ShowUserStatus(ctx *gin.Context) {
	userName := ctx.Param("userName")

	user, err := c.userService.Status(userName)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "show user status",
		"user":    user,
	})
}

// UpdateUserStatus プロフィールを更新（multipart、画像は任意）
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "認証が必要です"})
		return
	}

	// マルチパートフォームを解析
	if err := ctx.Request.ParseMultipartForm(32 << 20); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "マルチパートフォームの解析に失敗しました"})
		return
	}

	targetID, err := strconv.ParseUint(ctx.PostForm("_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errorMessage": "無効なIDです"})
		return
	}

	input := services.UpdateStatusInput{
		TargetID: uint(targetID),
		CallerID: user.ID,
		UserName: ctx.PostForm("userName"),
		Email:    ctx.PostForm("email"),
		Password: ctx.PostForm("password"),
		Fruit:    ctx.PostForm("fruit"),
	}

	// 画像は任意。ない場合は現在のものを維持する
	file, fileHeader, err := ctx.Request.FormFile("thumb")
	if err == nil {
		defer file.Close()
		input.File = file
		input.FileHeader = fileHeader
	}

	updatedUser, err := c.userService.UpdateStatus(input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "update succeeded!",
		"user":    updatedUser,
	})
}
