package screenshots

import (
	"os"
	"runtime"

	"github.com/offlinefirst/snapvault/pkg/permissions"
)

// Environment describes screenshot capture availability.
type Environment struct {
	Provider   string
	Displays   int
	Available  bool
	Permission string
	Message    string
	Guidance   string
}

const (
	providerCoreGraphics = "coregraphics"
	providerGDI          = "gdi"
	providerX11          = "x11"
	providerWayland      = "wayland"
	providerUnknown      = "unknown"
)

func backendName() string {
	switch runtime.GOOS {
	case "darwin":
		return providerCoreGraphics
	case "windows":
		return providerGDI
	case "linux", "freebsd", "openbsd", "netbsd":
		if os.Getenv("WAYLAND_DISPLAY") != "" {
			return providerWayland
		}
		return providerX11
	default:
		return providerUnknown
	}
}

// DetectEnvironment reports screenshot backend support and permissions.
func DetectEnvironment() Environment {
	screenRecording := permissions.ProbeScreenRecording(nil)
	env := Environment{
		Provider:   backendName(),
		Displays:   numActiveDisplays(),
		Permission: screenRecording.StatusString(),
		Message:    screenRecording.Message,
		Guidance:   screenRecording.Guidance,
	}

	env.Available = env.Displays > 0 && screenRecording.Status != permissions.StatusDenied
	if env.Displays == 0 {
		env.Message = ErrNoDisplay.Error()
	}
	if !env.Available && env.Message == "" {
		env.Message = "screen capture unavailable"
	}
	return env
}
