// Package ui contains the Fyne-based desktop user interface for the converter.
// It wires the conversion form to the conversion service and the runtime
// installer, and renders the script log, the task status and settings. All UI
// strings are localized via Localization.
package ui
