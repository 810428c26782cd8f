package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsEmpty(c.input), "IsEmpty(%q)", c.input)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "IsValidEmail(%q)", email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "IsValidEmail(%q)", email)
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // v1
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, id := range valid {
		assert.True(t, IsValidUUID(id), "IsValidUUID(%q)", id)
	}
	for _, id := range invalid {
		assert.False(t, IsValidUUID(id), "IsValidUUID(%q)", id)
	}
}

func TestIsValidDate(t *testing.T) {
	for _, s := range []string{"2023-01-01", "2000-12-31"} {
		_, ok := IsValidDate(s)
		assert.True(t, ok, "IsValidDate(%q)", s)
	}
	for _, s := range []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, "IsValidDate(%q)", s)
	}
}

func TestIsValidDateTime(t *testing.T) {
	for _, s := range []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"} {
		_, ok := IsValidDateTime(s)
		assert.True(t, ok, "IsValidDateTime(%q)", s)
	}
	for _, s := range []string{"2024-01-15", "2024-01-15 10:30:00", ""} {
		_, ok := IsValidDateTime(s)
		assert.False(t, ok, "IsValidDateTime(%q)", s)
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	for _, s := range []string{"EMP00001", "EMP12345", "EMP123456"} {
		assert.True(t, IsValidEmployeeCode(s), "IsValidEmployeeCode(%q)", s)
	}
	for _, s := range []string{"EMP0001", "emp00001", "E00001", "2024-0001", ""} {
		assert.False(t, IsValidEmployeeCode(s), "IsValidEmployeeCode(%q)", s)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	assert.True(t, IsInSlice("a", slice))
	assert.False(t, IsInSlice("d", slice))
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0, 0, 100))
	assert.True(t, InRange(100, 0, 100))
	assert.False(t, InRange(101, 0, 100))
	assert.False(t, InRange(-1, 0, 100))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	assert.Equal(t, "email: invalid; phone: required", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	assert.Equal(t, map[string]string{"email": "invalid", "phone": "required"}, errs.ToMap())
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("name", "name is required")
	err := errs.Err()
	assert.Error(t, err)
	assert.IsType(t, ValidationErrors{}, err)
}
