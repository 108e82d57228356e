package llama

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemInfo_NonEmptyAndStable(t *testing.T) {
	info := SystemInfo()
	assert.NotEmpty(t, info)
	assert.Equal(t, info, SystemInfo())
	assert.Equal(t, info, NewProvider().SystemInfo())
}
