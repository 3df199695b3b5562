package model

import (
	"fmt"
	"strings"
)

// Platform is the operating system a target is built for.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformMacOS   Platform = "macos"
	PlatformTVOS    Platform = "tvos"
	PlatformWatchOS Platform = "watchos"
)

var platformCaptions = map[Platform]string{
	PlatformIOS:     "iOS",
	PlatformMacOS:   "macOS",
	PlatformTVOS:    "tvOS",
	PlatformWatchOS: "watchOS",
}

// ParsePlatform converts a manifest value into a Platform.
func ParsePlatform(raw string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := platformCaptions[p]; !ok {
		return "", fmt.Errorf("unknown platform %q: must be one of 'ios', 'macos', 'tvos', 'watchos'", raw)
	}
	return p, nil
}

// Caption returns the human-readable platform name.
func (p Platform) Caption() string {
	if c, ok := platformCaptions[p]; ok {
		return c
	}
	return string(p)
}

// SimulatorSDK returns the SDK used to build for a simulator. macOS has no
// simulator and builds against its only SDK.
func (p Platform) SimulatorSDK() (string, bool) {
	switch p {
	case PlatformIOS:
		return "iphonesimulator", true
	case PlatformTVOS:
		return "appletvsimulator", true
	case PlatformWatchOS:
		return "watchsimulator", true
	case PlatformMacOS:
		return "macosx", true
	default:
		return "", false
	}
}

// DeviceSDK returns the SDK used to build for physical devices.
func (p Platform) DeviceSDK() (string, bool) {
	switch p {
	case PlatformIOS:
		return "iphoneos", true
	case PlatformTVOS:
		return "appletvos", true
	case PlatformWatchOS:
		return "watchos", true
	case PlatformMacOS:
		return "macosx", true
	default:
		return "", false
	}
}
