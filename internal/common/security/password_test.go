package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainVerifier(t *testing.T) {
	v := PlainVerifier{}

	stored, err := v.Hash("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", stored)

	assert.True(t, v.Verify("hunter2", stored))
	assert.False(t, v.Verify("hunter3", stored))
	assert.False(t, v.Verify("", stored))
}

func TestBcryptVerifier(t *testing.T) {
	v := BcryptVerifier{Cost: 4} // min cost keeps the test fast

	stored, err := v.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored)

	assert.True(t, v.Verify("hunter2", stored))
	assert.False(t, v.Verify("hunter3", stored))
}

func TestNewPasswordVerifier(t *testing.T) {
	assert.IsType(t, BcryptVerifier{}, NewPasswordVerifier("bcrypt"))
	assert.IsType(t, PlainVerifier{}, NewPasswordVerifier("plain"))
	assert.IsType(t, PlainVerifier{}, NewPasswordVerifier(""))
}
