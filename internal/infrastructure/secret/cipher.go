// Package secret 提供凭证加密存储能力
package secret

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
)

// Prefix 密文标记前缀，无前缀的值按历史明文原样透传
const Prefix = "ENC:"

// Cipher 基于口令的对称加密器
// 口令经单向散列派生密钥，密文带随机 nonce，同一明文两次加密结果不同
type Cipher struct {
	aead cipher.AEAD
}

// New 创建加密器，口令为空时返回可用于解密透传的空实现
func New(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return &Cipher{}, nil
	}

	key := sha256.Sum256([]byte(passphrase))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Ready 是否已配置口令
func (c *Cipher) Ready() bool {
	return c.aead != nil
}

// IsEncrypted 检查值是否为密文
func IsEncrypted(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

// Encrypt 加密明文，输出带前缀的密文；空输入返回空
func (c *Cipher) Encrypt(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}
	if c.aead == nil {
		return "", errors.ErrCipherNotReady
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)
	return Prefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt 解密密文
// 无前缀的输入原样返回；解密失败返回空串并记录日志，绝不向上抛错。
// 未配置口令时密文原样带前缀返回，调用方据此区分口令缺失与密文损坏
func (c *Cipher) Decrypt(ctx context.Context, s string) string {
	if !IsEncrypted(s) {
		return s
	}
	if c.aead == nil {
		logger.Warn(ctx, "encrypted credential but no passphrase configured")
		return s
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(s, Prefix))
	if err != nil {
		logger.Warn(ctx, "malformed credential ciphertext", "error", err.Error())
		return ""
	}
	if len(raw) < c.aead.NonceSize() {
		logger.Warn(ctx, "credential ciphertext too short")
		return ""
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		logger.Warn(ctx, "failed to open credential ciphertext", "error", err.Error())
		return ""
	}
	return string(plain)
}
