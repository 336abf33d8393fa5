package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
)

const (
	// APIKeyHeader carries the operator key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter accepted when the header cannot be set,
	// as with browser EventSource clients.
	APIKeyQuery = "api_key"
)

// APIKeyAuth guards the operator routes. The key is read from X-API-Key, an
// "Authorization: Bearer" header or the api_key query parameter, in that
// order. Keys are compared through their SHA-256 digests in constant time.
// With no non-empty validKeys the guard lets everything through.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	var digests [][sha256.Size]byte
	for _, k := range validKeys {
		if k != "" {
			digests = append(digests, sha256.Sum256([]byte(k)))
		}
	}

	return func(c *gin.Context) {
		if len(digests) == 0 {
			c.Next()
			return
		}

		if presented := presentedKey(c); presented != "" && matchesAny(digests, presented) {
			c.Next()
			return
		}

		message := i18n.GetTranslator().Translate(i18n.ErrKeyUnauthorized, i18n.GetLocale(c))
		c.Header("WWW-Authenticate", `Bearer realm="operator"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
	}
}

func presentedKey(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	if auth := c.GetHeader("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return c.Query(APIKeyQuery)
}

func matchesAny(digests [][sha256.Size]byte, key string) bool {
	sum := sha256.Sum256([]byte(key))
	found := 0
	for i := range digests {
		found |= subtle.ConstantTimeCompare(digests[i][:], sum[:])
	}
	return found == 1
}
