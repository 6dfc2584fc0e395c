package util

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("decrypt(encrypt(p, k), k) == p", prop.ForAll(
		func(plaintext string) bool {
			key, err := GenerateEncryptionKey()
			if err != nil {
				return false
			}
			payload, err := Encrypt(plaintext, key)
			if err != nil {
				return false
			}
			got, err := Decrypt(payload, key)
			return err == nil && got == plaintext
		},
		gen.AnyString(),
	))

	properties.Property("a different key never decrypts", prop.ForAll(
		func(plaintext string) bool {
			key, _ := GenerateEncryptionKey()
			other, _ := GenerateEncryptionKey()
			payload, err := Encrypt(plaintext, key)
			if err != nil {
				return false
			}
			_, err = Decrypt(payload, other)
			return errors.Is(err, ErrCrypto)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)

	a, err := Encrypt("same body", key)
	require.NoError(t, err)
	b, err := Encrypt("same body", key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, strings.Split(a, ":"), 2)
}

func TestDecryptMalformed(t *testing.T) {
	key, err := GenerateEncryptionKey()
	require.NoError(t, err)
	valid, err := Encrypt("T", key)
	require.NoError(t, err)

	last := "0"
	if valid[len(valid)-1] == '0' {
		last = "1"
	}
	tampered := valid[:len(valid)-1] + last

	tests := []struct {
		name    string
		payload string
		key     string
	}{
		{"no separator", "abcdef", key},
		{"bad nonce hex", "zz:" + strings.Split(valid, ":")[1], key},
		{"short nonce", "abcd:" + strings.Split(valid, ":")[1], key},
		{"bad ciphertext hex", strings.Split(valid, ":")[0] + ":xyz", key},
		{"key not hex", valid, "not-a-key"},
		{"key too short", valid, "abcd"},
		{"tampered", tampered, key},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.payload, tt.key)
			assert.ErrorIs(t, err, ErrCrypto)
		})
	}
}

func TestGenerateEncryptionKey(t *testing.T) {
	k1, err := GenerateEncryptionKey()
	require.NoError(t, err)
	k2, err := GenerateEncryptionKey()
	require.NoError(t, err)

	assert.Len(t, k1, EncryptionKeySize*2)
	assert.NotEqual(t, k1, k2)
}
