package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Isotter/isotter_backend/internal/config"
	"github.com/Isotter/isotter_backend/internal/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageService アバター画像の保存を行うサービスインターフェース
// 保存先のパス（またはURL）を返す。対応していないMIMEタイプの場合は
// エラーにせず空文字を返し、呼び出し側は画像なしとして扱う
type ImageService interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
}

// NewImageService ImageServiceを作成
// Cloudinaryの認証情報が設定されていればCloudinaryへ、なければローカルに保存
func NewImageService(cfg *config.Config) (ImageService, error) {
	if cfg.Cloudinary.CloudName != "" && cfg.Cloudinary.APIKey != "" {
		cld, err := cloudinary.NewFromParams(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
		)
		if err != nil {
			return nil, err
		}
		return &cloudinaryImageService{cld: cld, cfg: cfg}, nil
	}
	return newLocalImageService(cfg)
}

// allowedImageType MIMEタイプが受け付け対象かどうか
func allowedImageType(cfg *config.Config, header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	for _, t := range cfg.Storage.AllowedTypes {
		if contentType == t {
			return true
		}
	}
	return false
}

// imageFileName タイムスタンプを付けたファイル名を生成
func imageFileName(originalName string) string {
	timestamp := time.Now().Format(time.RFC3339)
	// Windowsのファイル名に使えない文字を避ける
	timestamp = strings.ReplaceAll(timestamp, ":", "-")
	return fmt.Sprintf("%s-%s", timestamp, filepath.Base(originalName))
}

// localImageService ローカルディスクに保存する実装
type localImageService struct {
	cfg       *config.Config
	uploadDir string
}

func newLocalImageService(cfg *config.Config) (ImageService, error) {
	uploadDir := cfg.Storage.UploadDir
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("画像ディレクトリの作成に失敗しました: %v", err)
	}
	return &localImageService{cfg: cfg, uploadDir: uploadDir}, nil
}

// Save 画像をローカルに保存し、/images配下のパスを返す
func (s *localImageService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !allowedImageType(s.cfg, header) {
		// 受け付けないタイプは黙って無視する
		return "", nil
	}

	fileName := imageFileName(header.Filename)
	filePath := filepath.Join(s.uploadDir, fileName)

	dest, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("ファイルの作成に失敗しました: %v", err)
	}
	defer dest.Close()

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ファイルのシークに失敗しました: %v", err)
	}

	if _, err := io.Copy(dest, file); err != nil {
		// 書き込みかけのファイルは残さない
		_ = os.Remove(filePath)
		return "", fmt.Errorf("ファイルのコピーに失敗しました: %v", err)
	}

	return "images/" + fileName, nil
}

// cloudinaryImageService Cloudinaryに保存する実装
type cloudinaryImageService struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

// Save 画像をCloudinaryにアップロードし、配信URLを返す
func (s *cloudinaryImageService) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !allowedImageType(s.cfg, header) {
		return "", nil
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("ファイルのシークに失敗しました: %v", err)
	}

	publicID := fmt.Sprintf("thumb_%d_%s", time.Now().Unix(), utils.GenerateRandomString(8))
	result, err := s.cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:       s.cfg.Cloudinary.Folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %v", err)
	}

	return result.SecureURL, nil
}
