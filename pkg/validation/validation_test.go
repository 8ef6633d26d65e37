package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("owner@venue.example"))
	assert.True(t, ValidateEmail("  Owner@Venue.Example  "))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Str0ng!pass"))
	assert.False(t, ValidatePassword("short1!"))
	assert.False(t, ValidatePassword("alllowercase1!"))
	assert.False(t, ValidatePassword("NoSpecialChar1"))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("venue_admin-1"))
	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername("has space"))
	assert.False(t, ValidateUsername(strings.Repeat("a", 31)))
}

func TestSanitizeDedication(t *testing.T) {
	assert.Equal(t, "for maria", SanitizeDedication("  for maria  ", 200))
	assert.Equal(t, "abc", SanitizeDedication("abc\x00", 200))

	long := strings.Repeat("x", 250)
	assert.Len(t, SanitizeDedication(long, 200), 200)

	// Zero max means unbounded
	assert.Len(t, SanitizeDedication(long, 0), 250)
}
