// Package platform contains OS integration: the default save folder and
// revealing a folder in the system file manager.
package platform
