package permissions

import (
	"runtime"
	"testing"
)

type fakeLookup map[string]string

func (f fakeLookup) get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func TestInterpretPermissionFlag(t *testing.T) {
	cases := map[string]struct {
		value    string
		expected Status
	}{
		"granted": {"granted", StatusGranted},
		"denied":  {"denied", StatusDenied},
		"prompt":  {"prompt", StatusPromptRequired},
		"unknown": {"", StatusUnknown},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res := interpretPermissionFlag("test", tc.value)
			if res.Status != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, res.Status)
			}
		})
	}
}

func TestProbeScreenRecordingHonoursEnv(t *testing.T) {
	lookup := fakeLookup{"SNAPVAULT_SCREEN_RECORDING": "denied"}
	res := ProbeScreenRecording(lookup.get)
	if res.Status != StatusDenied {
		t.Fatalf("expected denied, got %s", res.Status)
	}
	if res.Guidance == "" {
		t.Fatalf("expected guidance when denied")
	}
}

func TestProbeScreenRecordingDefaults(t *testing.T) {
	res := ProbeScreenRecording(fakeLookup{}.get)
	if runtime.GOOS == "darwin" {
		if res.Status != StatusPromptRequired {
			t.Fatalf("expected prompt on darwin, got %s", res.Status)
		}
		return
	}
	if res.Status != StatusNotRequired {
		t.Fatalf("expected not_required, got %s", res.Status)
	}
}

func TestStatusStringFallsBackToUnknown(t *testing.T) {
	var res ProbeResult
	if res.StatusString() != string(StatusUnknown) {
		t.Fatalf("expected unknown, got %s", res.StatusString())
	}
}
