// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Twilight ladder, sub-body ground track, JSON snapshot export
// 0.2.0 - Rise/transit/set finder, headless almanac and watch modes
// 0.1.0 - Initial release: TUI almanac, Sun/Moon/planet positions, geodesy engine
