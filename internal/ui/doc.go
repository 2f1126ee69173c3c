package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires file selection (drag-and-drop and picker) to the
// separation service and renders progress, status, and the resulting stems.
// UI chrome strings are localized via Localization.
