package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateToken("secret", "sireesha", time.Hour)
		require.NoError(t, err)

		claims, err := ValidateToken("secret", token)
		require.NoError(t, err)
		assert.Equal(t, "sireesha", claims.Username)
		assert.Equal(t, "instagen-scheduler", claims.Issuer)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := GenerateToken("secret", "sireesha", time.Hour)
		require.NoError(t, err)

		_, err = ValidateToken("other", token)
		assert.Error(t, err)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token, err := GenerateToken("secret", "sireesha", -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken("secret", token)
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ValidateToken("secret", "not.a.token")
		assert.Error(t, err)
	})
}
