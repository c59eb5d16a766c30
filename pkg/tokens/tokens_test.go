package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_Issue_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	iss := &Issuer{Secret: []byte("test-secret"), TTL: DefaultTTL, Now: func() time.Time { return now }}
	userID := uuid.NewString()

	token, err := iss.Issue(userID, "a@b.io", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, iss.Secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "a@b.io", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, now.Add(7*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestIssuer_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer(nil, 0).Issue("id", "e", "user")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestAccessClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	token, err := NewIssuer([]byte("one"), time.Hour).Issue("id", "e", "user")
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("two"))
	assert.Error(t, err)

	_, err = AccessClaimsFromToken("garbage", []byte("one"))
	assert.Error(t, err)

	expired := &Issuer{Secret: []byte("one"), TTL: time.Minute, Now: func() time.Time { return time.Now().Add(-time.Hour) }}
	old, err := expired.Issue("id", "e", "user")
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(old, []byte("one"))
	assert.Error(t, err)
}
