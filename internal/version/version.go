// Package version provides build and version information.
package version

// Version is the current application version.
// Update this at logical milestones.
const Version = "0.1.0"

// Milestones:
// 0.1.0 - Item, listing and play count lookups; CLI and catalog browser
