package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/callboard-app/callboard/internal/db"
)

// Audience values carried in the "aud" claim. Admin and volunteer tokens
// are not interchangeable.
const (
	AudienceAdmin     = "admin"
	AudienceVolunteer = "volunteer"
)

// GenerateJWT signs a token embedding the subject ID and audience.
func GenerateJWT(subjectID int, audience, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subjectID,
		"aud": audience,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// parseToken verifies the JWT and returns the subject ID, requiring the
// expected audience.
func parseToken(tokenString, audience, secret string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	if aud, _ := claims["aud"].(string); aud != audience {
		return 0, errors.New("wrong token audience")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("invalid sub claim")
	}
	return int(sub), nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// AdminJWTMiddleware checks the bearer token, loads the admin account and
// sets "currentAdmin" in context.
func AdminJWTMiddleware(secret string, store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}
		adminID, err := parseToken(token, AudienceAdmin, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		admin, err := store.GetAdminByID(adminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}
		c.Set("currentAdmin", admin)
		c.Next()
	}
}

// VolunteerJWTMiddleware checks the bearer token, loads the participant
// and sets "currentParticipant" in context. Unapproved accounts are
// rejected even with a valid token; approval can be revoked after a link
// was issued.
func VolunteerJWTMiddleware(secret string, store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}
		participantID, err := parseToken(token, AudienceVolunteer, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		p, err := store.GetParticipantByID(participantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "participant not found"})
			return
		}
		if !p.Approved {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "participant not approved"})
			return
		}
		c.Set("currentParticipant", p)
		c.Next()
	}
}
