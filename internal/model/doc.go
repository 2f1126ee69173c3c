package model

// Package model defines domain data structures used across the app: separation
// jobs, stem results, and phase enums. Structures are designed for direct
// binding in the UI and explicit state transitions.
