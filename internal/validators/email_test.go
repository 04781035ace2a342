package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@example.com"))
	assert.True(t, IsEmail("a.b+c@sub.example.ph"))

	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("ana"))
	assert.False(t, IsEmail("ana@localhost"))
	assert.False(t, IsEmail("ana@example."))
	assert.False(t, IsEmail("Ana <ana@example.com>"))
}
