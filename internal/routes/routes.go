package routes

import (
	"log"

	"github.com/Isotter/isotter_backend/internal/config"
	"github.com/Isotter/isotter_backend/internal/controllers"
	"github.com/Isotter/isotter_backend/internal/middlewares"
	"github.com/Isotter/isotter_backend/internal/repository"
	"github.com/Isotter/isotter_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter ルーターを設定
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// Ginルーターを作成
	r := gin.Default()

	// ミドルウェアを設定
	r.Use(middlewares.ErrorMiddleware())
	r.Use(middlewares.CORSMiddleware(cfg.Server.FrontEndURL))

	// リポジトリを作成
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	// サービスを作成
	mailService := services.NewMailService(cfg)
	imageService, err := services.NewImageService(cfg)
	if err != nil {
		log.Fatalf("画像サービスの初期化に失敗しました: %v", err)
	}
	authService := services.NewAuthService(userRepo, mailService, cfg)
	userService := services.NewUserService(userRepo, imageService)
	timelineService := services.NewTimelineService(postRepo, userRepo)

	// コントローラーを作成
	adminController := controllers.NewAdminController(authService, userService)
	timelineController := controllers.NewTimelineController(timelineService)
	healthController := controllers.NewHealthController()

	// 認証ミドルウェア
	authMiddleware := middlewares.AuthMiddleware(authService)

	// アップロードされた画像を静的配信
	r.Static("/images", cfg.Storage.UploadDir)

	// ヘルスチェック
	r.GET("/health", healthController.Check)

	// アカウント管理ルート
	admin := r.Group("/admin")
	{
		admin.PUT("/signup", adminController.Signup)
		admin.POST("/login", adminController.Login)
		admin.POST("/reset-password", adminController.ForgotPassword)
		admin.GET("/reset-password/:token", adminController.ConfirmResetToken)
		admin.PATCH("/reset-password/:token", adminController.ResetPassword)
		admin.GET("/userStatus/:userName", adminController.ShowUserStatus)
		admin.PATCH("/userStatus", authMiddleware, adminController.UpdateUserStatus)
	}

	// タイムラインルート
	timeline := r.Group("/timeline")
	{
		timeline.GET("/posts", timelineController.GetPosts)
		timeline.POST("/post", authMiddleware, timelineController.CreatePost)
		timeline.DELETE("/post", authMiddleware, timelineController.DeletePost)
	}

	return r
}
