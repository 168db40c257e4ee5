package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	assert.True(t, NotBlank("x"))
	assert.False(t, NotBlank(""))
	assert.False(t, NotBlank(" \t\n"))
}

func TestRunes(t *testing.T) {
	assert.True(t, MinRunes("héllo", 5))
	assert.False(t, MinRunes("hé", 3))
}

func TestNoDuplicates(t *testing.T) {
	assert.True(t, NoDuplicates([]int{1, 2, 3}))
	assert.False(t, NoDuplicates([]int{1, 2, 1}))
	assert.True(t, NoDuplicates([]string{}))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("asha@campus.edu"))
	assert.False(t, IsEmail("asha.campus.edu"))
	assert.False(t, IsEmail(""))
}

func TestIsEnrollment(t *testing.T) {
	assert.True(t, IsEnrollment("0801CS211001"))
	assert.True(t, IsEnrollment("ENR-001"))
	assert.False(t, IsEnrollment("enr-001"))
	assert.False(t, IsEnrollment("E1"))
}
