package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"amigo-admin/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevVerifier(t *testing.T) {
	v := NewDevVerifier("secret")

	token, err := utils.GenerateDevToken([]byte("secret"), "u-1", "u1@example.com", time.Minute)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UID)
	assert.Equal(t, "u1@example.com", id.Email)

	_, err = v.Verify(context.Background(), "bogus")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithContext(context.Background(), &Identity{UID: "u-2"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-2", id.UID)
}
