package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "gym-occupancy"
)

func TestTokenService(t *testing.T) {
	svc := services.NewTokenService(testSecret, testIssuer, time.Hour)

	t.Run("Success: Round trip returns the client", func(t *testing.T) {
		token, err := svc.GenerateToken("scraper")
		require.NoError(t, err)

		client, err := svc.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, "scraper", client)
	})

	t.Run("Fail: Empty client name", func(t *testing.T) {
		_, err := svc.GenerateToken("")

		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: Token signed with another secret", func(t *testing.T) {
		other := services.NewTokenService("another-secret-another-secret-xx", testIssuer, time.Hour)
		token, err := other.GenerateToken("scraper")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: Wrong issuer", func(t *testing.T) {
		other := services.NewTokenService(testSecret, "someone-else", time.Hour)
		token, err := other.GenerateToken("scraper")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: Expired token", func(t *testing.T) {
		expired := services.NewTokenService(testSecret, testIssuer, -time.Minute)
		token, err := expired.GenerateToken("scraper")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: Unsigned token is rejected", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "scraper",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")

		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
