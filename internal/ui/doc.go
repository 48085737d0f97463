// Package ui contains the Fyne-based desktop user interface. It collects the
// user's choices, hands them to the job actions and applies relay updates on
// the Fyne main thread. All UI strings are localized via Localization.
package ui
