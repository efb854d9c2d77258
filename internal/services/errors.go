package services

import "errors"

// ユーザー向けのエラー。コントローラー側でHTTPステータスに変換する
var (
	ErrInvalidUserName   = errors.New("条件に合うuserNameを登録してください")
	ErrInvalidEmail      = errors.New("条件に合うemailを登録してください")
	ErrInvalidPassword   = errors.New("パスワードは6文字以上の英数字を入力")
	ErrPasswordConfirm   = errors.New("パスワードが間違っています")
	ErrUserNameTaken     = errors.New("このuserNameはすでに使われています")
	ErrEmailTaken        = errors.New("このemailはすでに使われています")
	ErrDuplicateUser     = errors.New("このuserNameまたはemailはすでに使われています")
	ErrUserNotFound      = errors.New("ユーザーがいないみたい。")
	ErrWrongPassword     = errors.New("パスワードが一致しません")
	ErrEmailNotFound     = errors.New("メールアドレスが登録されていません")
	ErrResetTokenExpired = errors.New("トークンが無効か、有効期限が切れています")
	ErrInvalidToken      = errors.New("無効なトークンです")
	ErrInvalidContent    = errors.New("投稿可能文字数は1~140文字です")
	ErrPostNotFound      = errors.New("Postが見つかりません")
	ErrPostForbidden     = errors.New("このPostを削除する権限がありません")
	ErrProfileForbidden  = errors.New("このユーザの情報を更新する権限がありません")
)
