package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextSubject is the gin context key of the authenticated subject.
const ContextSubject = "subject"

// Auth requires a valid HS256 bearer token on write methods. Safe methods
// pass through, and so do the read-only POST routes listed in public as
// "METHOD /route/:param" (gin's full path). An empty issuer skips the issuer
// check.
func Auth(secret []byte, issuer string, public ...string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)
	open := make(map[string]struct{}, len(public))
	for _, route := range public {
		open[route] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := open[c.Request.Method+" "+c.FullPath()]; ok || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, http.StatusUnauthorized, "authorization header required")
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abort(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims := &jwt.RegisteredClaims{}
		parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !parsed.Valid {
			abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}

func isSafeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}
