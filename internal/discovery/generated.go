package discovery

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// generatedPattern matches the standard Go generated-file comment, which
// must appear before the package declaration per Go convention.
var generatedPattern = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// isGeneratedFile checks whether a Go file contains a generated-code
// comment before its package declaration. This handles files with a
// copyright header preceding the generated comment, a common pattern with
// tools like stringer.
func isGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "package ") {
			return false, nil
		}
		if generatedPattern.MatchString(line) {
			return true, nil
		}
	}
	return false, scanner.Err()
}
