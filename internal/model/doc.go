package model

// Package model defines the domain values shared across the app: download
// requests, authentication choices, progress events, job outcomes and status
// enums. Requests are plain values and validated before a job starts.
