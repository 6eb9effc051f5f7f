package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringShadowing(t *testing.T) {
	t.Setenv("CONV_PORT", "9000")
	t.Setenv("PORT", "8080")

	assert.Equal(t, "9000", String("1234", "CONV_PORT", "PORT"))
	assert.Equal(t, "8080", String("1234", "CONV_MISSING", "PORT"))
	assert.Equal(t, "1234", String("1234", "CONV_MISSING", "ALSO_MISSING"))
}

func TestTypedParsing(t *testing.T) {
	t.Setenv("T_INT", "42")
	t.Setenv("T_BOOL", "true")
	t.Setenv("T_DUR", "45s")
	t.Setenv("T_BAD", "not-a-number")

	assert.Equal(t, 42, Int(0, "T_INT"))
	assert.Equal(t, 7, Int(7, "T_BAD"))
	assert.True(t, Bool(false, "T_BOOL"))
	assert.Equal(t, 45*time.Second, Duration(time.Minute, "T_DUR"))
}

func TestSliceTrimsAndDropsEmpty(t *testing.T) {
	t.Setenv("T_ORIGINS", "https://a.example, https://b.example,,")

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, Slice(nil, "T_ORIGINS"))
	assert.Equal(t, []string{"*"}, Slice([]string{"*"}, "T_MISSING"))
}
