// Package config provides configuration management for the lesson browser.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion to plan.Config and progress.Options for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Workspace is the current directory, lessons live under ./plans
//	// .md and .ipynb files are lessons, "Extensions" folders are hidden
//	// Notebooks are locked and get a companion .py script
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/lessons.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.SaveLocation = "/media/usb/progress"
//	err := settings.Save("/path/to/lessons.json")
//
// # Save Location
//
// SaveLocation is the only option that changes where progress goes. It is
// honored only while the directory exists; the check runs on every save.
package config
