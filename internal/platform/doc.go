package platform

// Package platform contains OS/platform integration: host detection,
// application directories, Roblox file path helpers, and OS open/reveal.
