package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegexp        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	alphanumericRegexp = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// ValidateUserName userNameの形式チェック（5文字以上）
func ValidateUserName(userName string) bool {
	return len(strings.TrimSpace(userName)) >= 5
}

// ValidateEmail emailの形式チェック（5文字以上かつメール形式）
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	return len(email) >= 5 && emailRegexp.MatchString(email)
}

// ValidatePassword パスワードの形式チェック（6文字以上の英数字）
func ValidatePassword(password string) bool {
	return len(password) >= 6 && alphanumericRegexp.MatchString(password)
}
