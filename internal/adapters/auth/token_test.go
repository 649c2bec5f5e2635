package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsite/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	valid, err := issuer.Issue("user-123", "u@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue("user-123", "u@example.com", -time.Minute)
	require.NoError(t, err)
	otherSecret, err := NewJWTIssuer("other").Issue("user-123", "u@example.com", time.Hour)
	require.NoError(t, err)
	noEmail, err := NewJWTIssuer(secret).Issue("user-123", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		want    domain.Principal
		wantErr bool
	}{
		{name: "valid", token: valid, want: domain.Principal{UserID: "user-123", Email: "u@example.com"}},
		{name: "expired", token: expired, wantErr: true},
		{name: "wrong secret", token: otherSecret, wantErr: true},
		{name: "missing email claim", token: noEmail, wantErr: true},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
	}

	verifier := NewJWTVerifier(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
