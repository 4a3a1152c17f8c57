package gpu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVendorFile(t *testing.T, base, card, id string) {
	t.Helper()
	dir := filepath.Join(base, card, "device")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor"), []byte(id+"\n"), 0o644))
}

func TestDetectDRMPrimaryCard(t *testing.T) {
	base := t.TempDir()
	writeVendorFile(t, base, "card0", "0x1002")

	assert.Equal(t, VendorAMD, detectDRM(base))
}

func TestDetectDRMFallsBackToSecondCard(t *testing.T) {
	base := t.TempDir()
	writeVendorFile(t, base, "card1", "0x10de")

	assert.Equal(t, VendorNVIDIA, detectDRM(base))
}

func TestDetectDRMUnknownVendor(t *testing.T) {
	base := t.TempDir()
	writeVendorFile(t, base, "card0", "0x1af4")

	assert.Equal(t, VendorUnknown, detectDRM(base))
}

func TestDetectDRMMissingSysfs(t *testing.T) {
	assert.Equal(t, VendorUnknown, detectDRM(filepath.Join(t.TempDir(), "nope")))
}

func TestVAAPIDriver(t *testing.T) {
	assert.Equal(t, "radeonsi", VendorAMD.VAAPIDriver())
	assert.Equal(t, "iHD", VendorIntel.VAAPIDriver())
	assert.Equal(t, "nvidia", VendorNVIDIA.VAAPIDriver())
	assert.Equal(t, "", VendorUnknown.VAAPIDriver())
}

func TestSetupVAAPISetsDriver(t *testing.T) {
	t.Setenv("LIBVA_DRIVER_NAME", "")

	applied := setupVAAPI(VendorIntel)

	assert.Equal(t, map[string]string{"LIBVA_DRIVER_NAME": "iHD"}, applied)
	assert.Equal(t, "iHD", os.Getenv("LIBVA_DRIVER_NAME"))
}

func TestSetupVAAPIRespectsUserOverride(t *testing.T) {
	t.Setenv("LIBVA_DRIVER_NAME", "i965")

	applied := setupVAAPI(VendorIntel)

	assert.Empty(t, applied)
	assert.Equal(t, "i965", os.Getenv("LIBVA_DRIVER_NAME"))
}

func TestSetupVAAPINvidiaPrefersEGL(t *testing.T) {
	t.Setenv("LIBVA_DRIVER_NAME", "")
	t.Setenv("GST_GL_PLATFORM", "")

	applied := setupVAAPI(VendorNVIDIA)

	assert.Equal(t, "nvidia", applied["LIBVA_DRIVER_NAME"])
	assert.Equal(t, "egl", applied["GST_GL_PLATFORM"])
}

func TestSetupVAAPIUnknownVendorIsNoop(t *testing.T) {
	t.Setenv("LIBVA_DRIVER_NAME", "")

	assert.Empty(t, setupVAAPI(VendorUnknown))
	assert.Equal(t, "", os.Getenv("LIBVA_DRIVER_NAME"))
}
