package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconError    = "✗"
	IconSuccess  = "✓"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	ErrorLinePrefix    = IconError + " Error: "
	SuccessLinePrefix  = IconSuccess + " "
)

// Layout sizing
const (
	WindowWidth  float32 = 640
	WindowHeight float32 = 560

	LogMinHeight     float32 = 220
	SettingsWidth    float32 = 520
	SettingsHeight   float32 = 340
	StatusLabelWidth float32 = 84
)

// Log panel
const (
	// MaxLogLines caps the log panel; older lines are dropped first
	MaxLogLines = 2000
)
