package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminRealm = `Basic realm="Admin Panel"`

// BasicAuth 后台 Basic Auth 中间件。
// user 或 password 未配置时拒绝所有请求。password 可以是明文, 也可以是 bcrypt 哈希。
func BasicAuth(user, password string, logger *zap.SugaredLogger) gin.HandlerFunc {
	configured := user != "" && password != ""
	if !configured {
		logger.Error("缺少 ADMIN_USER 或 ADMIN_PASS, 后台将拒绝所有访问")
	}
	hashed := isBcryptHash(password)

	return func(c *gin.Context) {
		if !configured {
			logger.Warnw("后台凭据未配置, 拒绝访问", "path", c.Request.URL.Path, "ip", c.ClientIP())
			challenge(c)
			return
		}

		gotUser, gotPass, ok := c.Request.BasicAuth()
		if !ok || gotUser == "" || gotPass == "" {
			challenge(c)
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(gotUser), []byte(user)) == 1
		var passOK bool
		if hashed {
			passOK = bcrypt.CompareHashAndPassword([]byte(password), []byte(gotPass)) == nil
		} else {
			passOK = subtle.ConstantTimeCompare([]byte(gotPass), []byte(password)) == 1
		}
		if !userOK || !passOK {
			logger.Warnw("后台认证失败", "path", c.Request.URL.Path, "ip", c.ClientIP())
			challenge(c)
			return
		}

		c.Set("admin_user", gotUser)
		c.Next()
	}
}

func challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", adminRealm)
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.AbortWithStatus(http.StatusUnauthorized)
	c.Writer.WriteString("Authentication required") //nolint:errcheck
}

func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
