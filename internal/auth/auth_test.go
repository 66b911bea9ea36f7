package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/personaliz/agentd/internal/infra"
)

func testConfig(t *testing.T) infra.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return infra.AuthConfig{
		Operator:     "admin",
		PasswordHash: string(hash),
		Secret:       "test-secret",
		TokenTTL:     time.Hour,
	}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	svc, err := NewService(testConfig(t))
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), "admin", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Greater(t, token.ExpiresIn, int64(0))

	claims, err := svc.VerifyToken("Bearer " + token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Operator)
}

func TestGenerateTokenWrongPassword(t *testing.T) {
	svc, err := NewService(testConfig(t))
	require.NoError(t, err)

	_, err = svc.GenerateToken(context.Background(), "admin", "wrong")
	assert.EqualError(t, err, "invalid credentials")
}

func TestGenerateTokenWrongOperator(t *testing.T) {
	svc, err := NewService(testConfig(t))
	require.NoError(t, err)

	_, err = svc.GenerateToken(context.Background(), "root", "correct horse")
	// Same answer for either half being wrong.
	assert.EqualError(t, err, "invalid credentials")
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	svc, err := NewService(testConfig(t))
	require.NoError(t, err)

	other, err := NewService(infra.AuthConfig{
		Operator:     "admin",
		PasswordHash: testConfig(t).PasswordHash,
		Secret:       "different-secret",
		TokenTTL:     time.Hour,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), "admin", "correct horse")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token.AccessToken)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, err := NewService(testConfig(t))
	require.NoError(t, err)

	_, err = svc.VerifyToken("Bearer not.a.token")
	assert.Error(t, err)
}

func TestNewServiceRequiresSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.Secret = ""

	_, err := NewService(cfg)
	assert.Error(t, err)
}
