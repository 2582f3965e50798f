// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//
// Recognised keys:
//   - storage.data_dir: directory of the report database
//   - parser.fallback_subjects: override of the default subject list used
//     when the document names no known subject
//   - watch.debounce_ms: debounce interval of the watch command
//   - output.json: default the parse command to JSON output
package file
