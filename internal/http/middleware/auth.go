package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/callboard-app/callboard/internal/model"
)

// ErrInvalidCredentials is returned when email/password don't match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashPassword uses bcrypt to hash a plaintext password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash with the plaintext.
func CheckPassword(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	return err == nil
}

// GetCurrentAdmin retrieves *model.Admin from gin context after
// AdminJWTMiddleware has run.
func GetCurrentAdmin(c *gin.Context) (*model.Admin, bool) {
	v, exists := c.Get("currentAdmin")
	if !exists {
		return nil, false
	}
	admin, ok := v.(*model.Admin)
	return admin, ok
}

// GetCurrentParticipant retrieves *model.Participant from gin context
// after VolunteerJWTMiddleware has run.
func GetCurrentParticipant(c *gin.Context) (*model.Participant, bool) {
	v, exists := c.Get("currentParticipant")
	if !exists {
		return nil, false
	}
	p, ok := v.(*model.Participant)
	return p, ok
}
