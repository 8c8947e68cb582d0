package pkg

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openclass/lms-backend/config"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.Conf
	config.Conf = &config.AppConfig{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: 1,
		},
	}
	t.Cleanup(func() { config.Conf = prev })
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateAccessToken(42, "Ada", "ada@example.com", "teacher")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "teacher", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseAccessTokenErrors(t *testing.T) {
	setTestConfig(t)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "garbage token",
			token:   func(t *testing.T) string { return "not.a.token" },
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				claims := &Claims{
					UserID: 1,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}
				signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
					SignedString([]byte("other-secret"))
				require.NoError(t, err)
				return signed
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				claims := &Claims{
					UserID: 1,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
					},
				}
				signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
					SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return signed
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "unexpected signing method",
			token: func(t *testing.T) string {
				signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return signed
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(tt.token(t))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
