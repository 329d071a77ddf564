package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordWeak(t *testing.T) {
	errs := Errors{}
	Password(errs, "Password", "weak")

	assert.ElementsMatch(t, []string{
		"Password must contain at least 6 characters",
		"Password must contain an uppercase letter",
		"Password must contain a digit",
		"Password must contain one or more special characters.",
	}, errs["Password"])
}

func TestPasswordValid(t *testing.T) {
	errs := Errors{}
	Password(errs, "Password", "Str0ng!pass")
	assert.Empty(t, errs)
}

func TestPasswordForbiddenCharacters(t *testing.T) {
	for _, pw := range []string{"Str0ng!pa£s", "Str0ng!pa#s", "Str0ng! pas"} {
		errs := Errors{}
		Password(errs, "Password", pw)
		assert.Contains(t, errs["Password"],
			"Password must not contain the following characters £ # “” or spaces.", "password %q", pw)
	}
}

func TestPasswordEmpty(t *testing.T) {
	errs := Errors{}
	Password(errs, "Password", "")
	assert.Equal(t, []string{"Password is empty"}, errs["Password"])
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"john@test.test", nil},
		{"", []string{"Email is empty"}},
		{"not-an-email", []string{"Email address is invalid"}},
	}
	for _, tt := range tests {
		errs := Errors{}
		Email(errs, "Email", tt.value)
		assert.Equal(t, tt.want, errs["Email"], "email %q", tt.value)
	}
}

func TestMinLengthSkipsEmpty(t *testing.T) {
	errs := Errors{}
	MinLength(errs, "FirstName", "", 2, "too short")
	assert.Empty(t, errs)

	MinLength(errs, "FirstName", "J", 2, "too short")
	assert.Equal(t, []string{"too short"}, errs["FirstName"])
}

func TestMaxLength(t *testing.T) {
	errs := Errors{}
	MaxLength(errs, "Name", "abcdef", 5, "too long")
	assert.Equal(t, []string{"too long"}, errs["Name"])
}

func TestNonNegative(t *testing.T) {
	errs := Errors{}
	NonNegative(errs, "Price", -0.01, "negative")
	NonNegative(errs, "Weight", 0, "negative")
	assert.Equal(t, Errors{"Price": {"negative"}}, errs)
}
