package auth

import (
	"testing"
	"time"

	"talent-chat/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestIssueAndVerify(t *testing.T) {
	req := require.New(t)

	token, err := IssueToken(secret, "noah-1", time.Hour)
	req.NoError(err)

	userID, err := VerifyToken(secret, token)
	req.NoError(err)
	req.Equal("noah-1", userID)
}

func TestVerifyToken_Rejected(t *testing.T) {
	req := require.New(t)
	valid, err := IssueToken(secret, "noah-1", time.Hour)
	req.NoError(err)
	expired, err := IssueToken(secret, "noah-1", -time.Minute)
	req.NoError(err)
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           "noah-1",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	req.NoError(err)

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{"Empty token", secret, ""},
		{"Raw user id", secret, "noah-1"},
		{"Wrong secret", []byte("other-secret"), valid},
		{"Expired", secret, expired},
		{"Other issuer", secret, foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(tt.secret, tt.token)
			require.ErrorIs(t, err, errors.ErrInvalidToken)
		})
	}
}

func TestIssueToken_Invalid(t *testing.T) {
	req := require.New(t)

	_, err := IssueToken(nil, "noah-1", time.Hour)
	req.ErrorIs(err, errors.ErrMissingSecret)

	_, err = IssueToken(secret, "", time.Hour)
	req.ErrorIs(err, errors.ErrMissingSession)
}
