package content

import (
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// Delimiter opens and closes the metadata block.
const Delimiter = "---"

var slugLine = regexp.MustCompile(`^\s*slug:\s*["']?([^"']+)["']?\s*$`)

// Stem returns the file name of p without its extension.
func Stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// MetadataBlock returns the lines between the first two delimiter lines.
func MetadataBlock(text string) ([]string, bool) {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimRight(line, " \t\r") != Delimiter {
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		return lines[start+1 : i], true
	}
	return nil, false
}

// ParseSlug returns the slug declared in the metadata block of text, or fallback
// when there is no block or the block has no slug line.
func ParseSlug(text, fallback string) string {
	block, ok := MetadataBlock(text)
	if !ok {
		return fallback
	}
	for _, line := range block {
		m := slugLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		if slug := strings.TrimSpace(m[1]); slug != "" {
			return slug
		}
	}
	return fallback
}

// ExtractSlug reads p from fsys and returns its slug. When the file cannot be read
// the filename stem is returned together with the read error.
func ExtractSlug(fsys fs.FS, p string) (string, error) {
	stem := Stem(p)
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return stem, err
	}
	return ParseSlug(strings.ToValidUTF8(string(data), "\uFFFD"), stem), nil
}
