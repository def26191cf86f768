// Package useragent guesses the visitor's operating system from a User-Agent
// header so a page can promote the matching download link.
package useragent

import "strings"

type Platform int

const (
	Unknown Platform = iota
	Windows
	MacOS
	Linux
	Android
	IOS
	FreeBSD
)

var platformNames = map[Platform]string{
	Unknown: "unknown",
	Windows: "windows",
	MacOS:   "macos",
	Linux:   "linux",
	Android: "android",
	IOS:     "ios",
	FreeBSD: "freebsd",
}

// String returns the token used in data-platform attributes.
func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return platformNames[Unknown]
}

func ParsePlatform(s string) (Platform, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "mac", "osx", "darwin":
		return MacOS, true
	case "win", "win32", "win64":
		return Windows, true
	}
	for p, name := range platformNames {
		if name == s && p != Unknown {
			return p, true
		}
	}
	return Unknown, false
}

// Detect checks the header against known platform tokens. Order matters:
// iOS devices advertise "like Mac OS X" and Android advertises "Linux".
func Detect(ua string) Platform {
	s := strings.ToLower(ua)
	switch {
	case s == "":
		return Unknown
	case strings.Contains(s, "iphone"), strings.Contains(s, "ipad"), strings.Contains(s, "ipod"):
		return IOS
	case strings.Contains(s, "android"):
		return Android
	case strings.Contains(s, "windows"), strings.Contains(s, "win32"), strings.Contains(s, "win64"):
		return Windows
	case strings.Contains(s, "macintosh"), strings.Contains(s, "mac os x"), strings.Contains(s, "mac_powerpc"):
		return MacOS
	case strings.Contains(s, "freebsd"):
		return FreeBSD
	case strings.Contains(s, "linux"), strings.Contains(s, "x11"), strings.Contains(s, "cros "):
		return Linux
	default:
		return Unknown
	}
}
