package clipboard

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyEmptyText(t *testing.T) {
	err := Copy("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestCopy(t *testing.T) {
	if !Available() {
		t.Skip("no clipboard helper installed")
	}
	// May still fail without a display server, which is fine here.
	_ = Copy("https://example.com")
}

func TestAvailable(t *testing.T) {
	_, wlErr := exec.LookPath("wl-copy")
	_, xErr := exec.LookPath("xclip")

	assert.Equal(t, wlErr == nil || xErr == nil, Available())
}
