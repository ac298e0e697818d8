package config

import (
	"path"
	"path/filepath"
	"strings"
)

// MatchPath reports whether the slash-separated relative path name matches
// pattern. A `**` segment matches any number of directories, other segments
// follow path.Match.
func MatchPath(pattern, name string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}

func validatePattern(pattern string) error {
	for _, segment := range strings.Split(pattern, "/") {
		if segment == "**" {
			continue
		}
		if _, err := path.Match(segment, ""); err != nil {
			return err
		}
	}
	return nil
}

// Selects reports whether the file at rel, relative to the project root, is
// compiled: it matches an include pattern and no exclude pattern.
func (c *ProjectConfig) Selects(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if MatchPath(pattern, rel) {
			return false
		}
	}
	for _, pattern := range c.Include {
		if MatchPath(pattern, rel) {
			return true
		}
	}
	return false
}
