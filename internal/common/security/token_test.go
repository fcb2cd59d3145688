package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	claims := Claims{
		Name:    "alice",
		Email:   "alice@example.com",
		Role:    "user",
		Subject: "7",
	}

	token, err := codec.Encode(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := codec.Decode(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, claims, decoded)
}

func TestCodecRejectsForeignSecret(t *testing.T) {
	issuer := NewCodec([]byte("issuer-secret"), time.Hour)
	verifier := NewCodec([]byte("other-secret"), time.Hour)

	token, err := issuer.Encode(Claims{Name: "alice", Role: "user", Subject: "7"})
	require.NoError(t, err)

	_, err = verifier.Decode(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestCodecRejectsMalformedToken(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Decode(context.Background(), tokenString)
		require.Error(t, err, "token %q", tokenString)
		assert.True(t, errors.Is(err, common.ErrUnauthenticated))
	}
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), -time.Minute)

	token, err := codec.Encode(Claims{Name: "alice", Role: "user", Subject: "7"})
	require.NoError(t, err)

	_, err = codec.Decode(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}
