package platform

// Package platform provides OS integration helpers: directory handling,
// audio file detection, and opening saved stems with the default player.
