package slug

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// FromPath slugs the base name of a file path without its extension,
// so "~/Photos/Wall 3 (left).JPG" becomes "wall-3-left".
func FromPath(path string) string {
	base := filepath.Base(path)
	return Make(strings.TrimSuffix(base, filepath.Ext(base)))
}
