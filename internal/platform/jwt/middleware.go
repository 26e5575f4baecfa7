// Package jwtmw verifies bearer tokens issued by the account service and exposes
// the member id they carry.
package jwtmw

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ContextMemberID = "memberID"

// AuthRequired returns a Gin middleware that validates HS256 tokens signed with secret
// and stores the member id from the "sub" claim in the context.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if len(key) == 0 {
			// JWT_SECRET 未設定はサーバー側の設定ミス
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		memberID, ok := subject(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}
		c.Set(ContextMemberID, memberID)
		c.Next()
	}
}

// MemberID returns the member id stored by AuthRequired.
func MemberID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextMemberID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// subject accepts both numeric and string "sub" claims.
func subject(claims jwt.MapClaims) (uint, bool) {
	switch v := claims["sub"].(type) {
	case float64: // JWT numbers are decoded as float64
		if v <= 0 || v != float64(uint(v)) {
			return 0, false
		}
		return uint(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}
