package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitaconnect/kita-admin/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParserParse(t *testing.T) {
	userID := uuid.New()
	parser := NewParser(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "manager",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	principal, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, model.RoleManager, principal.Role)
	assert.True(t, principal.CanManage())
}

func TestParserRejectsWrongSecret(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.Error(t, err)
}

func TestParserRejectsExpiredToken(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.Error(t, err)
}

func TestParserRejectsBadSubject(t *testing.T) {
	parser := NewParser(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "not-a-uuid",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, err := parser.Parse(token)
	assert.Error(t, err)
}
