package util

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost bcrypt cost used when none is configured
// DefaultPasswordCost 未配置时使用的 bcrypt 成本
const DefaultPasswordCost = 10

// GeneratePasswordHash generates bcrypt hash of a password
// GeneratePasswordHash 生成密码的bcrypt哈希值
// cost <= 0 falls back to DefaultPasswordCost // cost <= 0 时使用默认成本
func GeneratePasswordHash(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultPasswordCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash verifies whether password matches the hash
// CheckPasswordHash 验证密码与哈希值是否匹配
// A malformed hash never matches. // 格式错误的哈希永远不匹配
func CheckPasswordHash(hash, password string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
