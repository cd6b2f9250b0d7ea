package resolver

import (
	"path"
	"strings"
)

// IgnoredDirs are directory names whose contents are never exported.
var IgnoredDirs = []string{"testUtils", "__tests__"}

// IgnoredFiles are file names that are never exported.
var IgnoredFiles = []string{"types.d.ts", "index.ts"}

// IsIgnored reports whether rel, a slash-separated path relative to the
// root directory, falls in the fixed ignore set.
func IsIgnored(rel string) bool {
	return inIgnoredDir(rel) || isIgnoredFile(path.Base(rel))
}

func inIgnoredDir(rel string) bool {
	segments := strings.Split(path.Dir(rel), "/")
	for _, segment := range segments {
		for _, dir := range IgnoredDirs {
			if segment == dir {
				return true
			}
		}
	}
	return false
}

func isIgnoredFile(name string) bool {
	for _, file := range IgnoredFiles {
		if name == file {
			return true
		}
	}
	return false
}
