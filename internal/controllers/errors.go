package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Isotter/isotter_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// statusOf サービスのエラーをHTTPステータスに変換する
func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidUserName),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrPasswordConfirm),
		errors.Is(err, services.ErrUserNameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateUser),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrInvalidContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrEmailNotFound),
		errors.Is(err, services.ErrResetTokenExpired),
		errors.Is(err, services.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrPostForbidden),
		errors.Is(err, services.ErrProfileForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError エラーを {errorMessage} のJSONで返す
// 想定外のエラーは詳細を漏らさず500のみ返す
func respondError(ctx *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("サーバーサイドエラー: %v", err)
		message = "サーバーエラーが発生しました"
	}
	ctx.JSON(status, gin.H{"errorMessage": message})
}
