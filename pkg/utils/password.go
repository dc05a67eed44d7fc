package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt 默认 cost；GenerateFromPassword 只在入参超长时出错，
// 调用方先做长度校验即可
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
