// Package config loads and watches the scorer configuration file
// (config.yaml).
//
// Top-level types:
//   - Config{LogLevel, Output, Guide}: full config tree parsed from YAML
//   - GuideConfig: low_certification_states and states_env; States()
//     merges both into a normalised, de-duplicated list of state codes
//
// Load(path) reads the YAML file, applies defaults (info logging, text
// output), then validates the enums and that every state code has two
// letters.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. A reload that fails validation is
// logged and dropped.
package config
