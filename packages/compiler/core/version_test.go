package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVersion(t *testing.T) {
	v := NewVersion("1.2.3-rc.1")
	assert.Equal(t, &Version{Full: "1.2.3-rc.1", Major: "1", Minor: "2", Patch: "3-rc.1"}, v)
	assert.Equal(t, "0", VERSION.Major)
}
