package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultUserAgent(t *testing.T) {
	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "jsonfetch/1.0.0", DefaultUserAgent())
}
