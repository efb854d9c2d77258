package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Isotter/isotter_backend/internal/config"
)

// MailService メール送信に関するサービスインターフェース
type MailService interface {
	SendWelcome(toEmail, userName string) error
	SendPasswordReset(toEmail, token string) error
}

// NewMailService MailServiceを作成
// MAIL_KEYが設定されていない場合はログ出力のみの実装を返す
func NewMailService(cfg *config.Config) MailService {
	if cfg.Mail.APIKey == "" {
		log.Println("MAIL_KEYが未設定のため、メールはログ出力のみになります")
		return &logMailService{}
	}
	return &sendGridMailService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// sendGridMailService SendGrid API v3を使った実装
type sendGridMailService struct {
	cfg    *config.Config
	client *http.Client
}

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendWelcome 登録完了メールを送信
func (s *sendGridMailService) SendWelcome(toEmail, userName string) error {
	subject := "Welcome to Isotter!"
	html := fmt.Sprintf(`<h1>%sさん、Isotterへようこそ！</h1>
<p>Isotterではツイートを投稿したり、他の人のツイートを見たりすることができます！！<br>（残念ながら、今の所リツイートやリプライの機能はありません！笑）</p>`, userName)
	return s.send(toEmail, subject, html)
}

// SendPasswordReset パスワード再設定メールを送信
func (s *sendGridMailService) SendPasswordReset(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.cfg.Server.FrontEndURL, token)
	subject := "Password Reset - Isotter"
	html := fmt.Sprintf(`<p>こちらはIsotterです。パスワードのリセットを受付けました。</p>
<p>下記のURLからIsotterのパスワードの再設定をお願いします。<br>
<a href="%s">%s</a></p>`, resetURL, resetURL)
	return s.send(toEmail, subject, html)
}

// send SendGridのmail sendエンドポイントにリクエストを送信
func (s *sendGridMailService) send(toEmail, subject, html string) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": toEmail}}},
		},
		"from":    map[string]string{"email": s.cfg.Mail.From},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/html", "value": html},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, sendGridEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.Mail.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("メール送信に失敗しました: status=%d body=%s", resp.StatusCode, respBody)
	}

	return nil
}

// logMailService 開発用。実際には送信せずログに出力する
type logMailService struct{}

func (s *logMailService) SendWelcome(toEmail, userName string) error {
	log.Printf("mail.welcome to=%s userName=%s", toEmail, userName)
	return nil
}

func (s *logMailService) SendPasswordReset(toEmail, token string) error {
	log.Printf("mail.password_reset to=%s token=%s", toEmail, token)
	return nil
}
