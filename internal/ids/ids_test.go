package ids

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase36(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-z]{9}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, re, Base36(Default(), 9))
	}
	assert.Equal(t, "", Base36(Default(), 0))
}

func TestSeededIsDeterministic(t *testing.T) {
	assert.Equal(t, Base36(Seeded(1, 2), 12), Base36(Seeded(1, 2), 12))
}
