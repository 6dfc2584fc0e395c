package util

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const codeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var charsetLen = big.NewInt(int64(len(codeCharset)))

// GetRandomString 生成指定长度的随机字符串
// Characters are drawn uniformly from crypto/rand; codes are not predictable from earlier output.
// 字符由 crypto/rand 均匀抽取，无法从之前的输出推测
func GetRandomString(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		b[i] = codeCharset[n.Int64()]
	}
	return string(b), nil
}

// GenerateKey returns size random bytes hex encoded.
// GenerateKey 返回 hex 编码的 size 字节随机数
func GenerateKey(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
