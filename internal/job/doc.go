// Package job runs one background job at a time and reports its progress
// through a relay. Runner owns the UI-side state; Actions wires the selector
// builder, the attempt ladder and the format probers into runnable jobs.
package job
