package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	password := "correcthorse"
	hashedPassword, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("correcthorse")
	assert.NoError(t, err)
	h2, err := HashPassword("correcthorse")
	assert.NoError(t, err)

	// bcrypt salts each hash, both must still verify
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPasswordHash("correcthorse", h1))
	assert.True(t, CheckPasswordHash("correcthorse", h2))
}

func TestCheckPasswordHash(t *testing.T) {
	password := "correcthorse"
	hashedPassword, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("batterystaple", hashedPassword))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("correcthorse", "notabcrypthash"))
}
