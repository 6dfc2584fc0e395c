package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// EncryptionKeySize AES-256 key length in bytes
// EncryptionKeySize AES-256 密钥字节长度
const EncryptionKeySize = 32

const payloadSeparator = ":"

// ErrCrypto is the cause of every Encrypt/Decrypt failure.
// ErrCrypto 是所有加解密失败的根因
var ErrCrypto = errors.New("crypto error")

// GenerateEncryptionKey returns a new hex encoded AES-256 key.
// GenerateEncryptionKey 生成 hex 编码的 AES-256 密钥
func GenerateEncryptionKey() (string, error) {
	return GenerateKey(EncryptionKeySize)
}

// Encrypt seals plaintext with AES-256-GCM under a fresh random nonce.
// The payload is hex(nonce):hex(ciphertext) and decrypts with only the key.
// Encrypt 使用 AES-256-GCM 和随机 nonce 加密，输出 hex(nonce):hex(密文)
func Encrypt(plaintext, key string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(ErrCrypto, err.Error())
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(nonce) + payloadSeparator + hex.EncodeToString(sealed), nil
}

// Decrypt opens a payload produced by Encrypt.
// Malformed payloads and wrong keys both fail with ErrCrypto.
// Decrypt 解密 Encrypt 的输出，格式错误或密钥错误均返回 ErrCrypto
func Decrypt(payload, key string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonceHex, sealedHex, ok := strings.Cut(payload, payloadSeparator)
	if !ok {
		return "", errors.Wrap(ErrCrypto, "payload missing separator")
	}
	nonce, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonce) != gcm.NonceSize() {
		return "", errors.Wrap(ErrCrypto, "invalid nonce")
	}
	sealed, err := hex.DecodeString(sealedHex)
	if err != nil {
		return "", errors.Wrap(ErrCrypto, "invalid ciphertext")
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Wrap(ErrCrypto, err.Error())
	}
	return string(plaintext), nil
}

func newGCM(key string) (cipher.AEAD, error) {
	raw, err := hex.DecodeString(key)
	if err != nil || len(raw) != EncryptionKeySize {
		return nil, errors.Wrap(ErrCrypto, "invalid key")
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, errors.Wrap(ErrCrypto, err.Error())
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(ErrCrypto, err.Error())
	}
	return gcm, nil
}
