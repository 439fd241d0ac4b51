// Package identity 生成点击 ID, 并对访客 IP 做加盐哈希。
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultSalt 未配置 IP_HASH_SALT 时使用的盐。
// 盐是公开的, 哈希可以被枚举 IP 反推, 隐私保护明显变弱。
const DefaultSalt = "default-salt"

// ErrEmptyIP 没有可哈希的 IP
var ErrEmptyIP = errors.New("identity: empty ip")

// NewClickID 生成一个随机 v4 UUID
func NewClickID() string {
	return uuid.NewString()
}

// IsClickID 判断是否为合法的 UUID 文本
func IsClickID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// HashIP 计算 sha256(salt + ip) 的小写十六进制
func HashIP(salt, ip string) (string, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return "", ErrEmptyIP
	}
	if salt == "" {
		salt = DefaultSalt
	}
	sum := sha256.Sum256([]byte(salt + ip))
	return hex.EncodeToString(sum[:]), nil
}

// ExtractIP 依次读取 X-Forwarded-For 第一项, X-Real-IP, CF-Connecting-IP
func ExtractIP(h http.Header) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(h.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return strings.TrimSpace(h.Get("CF-Connecting-IP"))
}
