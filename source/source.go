/*
File   : rei/source/source.go
Package source reads a program's source text for the CLI's file-mode
path (spec.md §6: "With one argument, treat it as a file path, read its
entire contents, and run").

Adapted from the teacher's file/file.go, which wrapped an *os.File
handle for a whole stateful fopen/fread/fwrite/fseek/ftell builtin
surface rei does not carry (no file-handle value kind exists in
spec.md's value model, and no SPEC_FULL.md component names one). What
survives is the one concern every SPEC_FULL.md file-mode run actually
needs: turning a path into its full text, reported as a host-level
error rather than a language runtime error (spec.md §7 "Host" taxonomy
entry, §6 "failure to open the file").
*/
package source

import (
	"fmt"
	"os"
)

// ReadFile returns the full contents of path as a string. A failure is
// wrapped with enough context for the CLI to report it as a host-level
// error (exit code 1, no diagnostic phase involved).
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read '%s': %w", path, err)
	}
	return string(data), nil
}
