package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWT_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewJWT("secret", "RS256", time.Minute)
	require.Error(t, err)

	_, err = NewJWT("secret", "none", time.Minute)
	require.Error(t, err)

	_, err = NewJWT("", "HS256", time.Minute)
	require.Error(t, err)

	_, err = NewJWT("secret", "HS256", 0)
	require.Error(t, err)
}

func TestJWT_Roundtrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			t.Parallel()

			j, err := NewJWT("secret", alg, 30*time.Minute)
			require.NoError(t, err)

			tok, err := j.Issue("alice")
			require.NoError(t, err)

			sub, err := j.Parse(tok)
			require.NoError(t, err)
			assert.Equal(t, "alice", sub)
		})
	}
}

func TestJWT_Claims(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	j, err := NewJWT("secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	j.now = func() time.Time { return now }

	tok, err := j.Issue("alice")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestJWT_Expired(t *testing.T) {
	t.Parallel()

	j, err := NewJWT("secret", "HS256", time.Minute)
	require.NoError(t, err)
	j.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := j.Issue("alice")
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.Parse(tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_WrongSecretOrAlgorithm(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWT("secret", "HS256", time.Minute)
	require.NoError(t, err)
	tok, err := issuer.Issue("alice")
	require.NoError(t, err)

	otherSecret, err := NewJWT("other", "HS256", time.Minute)
	require.NoError(t, err)
	_, err = otherSecret.Parse(tok)
	require.Error(t, err)

	otherAlg, err := NewJWT("secret", "HS512", time.Minute)
	require.NoError(t, err)
	_, err = otherAlg.Parse(tok)
	require.Error(t, err)

	_, err = issuer.Parse("not-a-token")
	require.Error(t, err)
}
