package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconSave     = "💾"
	IconFolder   = "📁"
	IconMusic    = "🎵"
	IconWarning  = "⚠"
)

// Text fragments
const (
	ErrorPrefix         = "Error: "
	ProgressLabelFormat = "%d%%"
	DashPlaceholder     = "—"
	MiddleDotSeparator  = " · "
)

// Layout sizing
const (
	WindowWidth  float32 = 640
	WindowHeight float32 = 600

	DropZoneMinWidth  float32 = 420
	DropZoneMinHeight float32 = 110

	StemLabelWidth    float32 = 110
	PercentLabelWidth float32 = 48
)
