// Package gpu identifies the primary graphics adapter so the webkit
// backend can point VA-API at a matching driver for video decode.
package gpu

import (
	"os"
	"path/filepath"
	"strings"
)

// Vendor is a graphics hardware vendor.
type Vendor string

const (
	VendorUnknown Vendor = ""
	VendorAMD     Vendor = "amd"
	VendorIntel   Vendor = "intel"
	VendorNVIDIA  Vendor = "nvidia"
)

// Detect returns the vendor of the primary GPU, or VendorUnknown when
// none can be identified. Detection reads the DRM nodes under
// /sys/class/drm and needs no external tools.
func Detect() Vendor {
	return detectDRM("/sys/class/drm")
}

func detectDRM(base string) Vendor {
	// card0 is the primary adapter on almost every box; card1 covers
	// hybrid setups where the integrated GPU grabbed the first slot.
	for _, card := range []string{"card0", "card1"} {
		data, err := os.ReadFile(filepath.Join(base, card, "device", "vendor"))
		if err != nil {
			continue
		}
		if v := vendorFromID(strings.TrimSpace(string(data))); v != VendorUnknown {
			return v
		}
	}
	return VendorUnknown
}

// vendorFromID maps a PCI vendor ID as sysfs prints it to a Vendor.
func vendorFromID(id string) Vendor {
	switch strings.ToLower(id) {
	case "0x1002":
		return VendorAMD
	case "0x8086":
		return VendorIntel
	case "0x10de":
		return VendorNVIDIA
	}
	return VendorUnknown
}

// VAAPIDriver returns the LIBVA_DRIVER_NAME value for the vendor, or
// "" when no driver is known.
func (v Vendor) VAAPIDriver() string {
	switch v {
	case VendorAMD:
		return "radeonsi"
	case VendorIntel:
		// iHD covers Gen 8 and newer; older parts need i965, which
		// users on such hardware set themselves.
		return "iHD"
	case VendorNVIDIA:
		return "nvidia"
	}
	return ""
}

// SetupVAAPI exports the VA-API environment for the detected GPU and
// returns the variables it set. Variables the user already exported are
// left alone. Must run before GTK and WebKit come up, they read the
// environment once.
func SetupVAAPI() map[string]string {
	return setupVAAPI(Detect())
}

func setupVAAPI(v Vendor) map[string]string {
	applied := map[string]string{}
	set := func(key, value string) {
		if os.Getenv(key) != "" {
			return
		}
		_ = os.Setenv(key, value)
		applied[key] = value
	}
	if driver := v.VAAPIDriver(); driver != "" {
		set("LIBVA_DRIVER_NAME", driver)
	}
	if v == VendorNVIDIA {
		// nvidia-vaapi-driver only talks EGL.
		set("GST_GL_PLATFORM", "egl")
	}
	return applied
}
