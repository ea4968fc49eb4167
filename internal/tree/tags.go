package tree

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

type tagMatter struct {
	Tags any `yaml:"tags" toml:"tags" json:"tags"`
}

// ScanTags walks root and returns the slash-separated relative paths of every
// markdown file whose front matter lists tag. Matching ignores case. Files
// without readable front matter are skipped.
func ScanTags(root, tag string) ([]string, error) {
	want := strings.ToLower(strings.TrimSpace(tag))
	if want == "" {
		return nil, errors.New("tag must not be empty")
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdown(d.Name()) {
			return nil
		}

		tags, err := readTags(path)
		if err != nil {
			return nil
		}
		for _, t := range tags {
			if strings.ToLower(t) == want {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				matches = append(matches, filepath.ToSlash(rel))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan tags under %s: %w", root, err)
	}

	sort.Strings(matches)
	return matches, nil
}

func readTags(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var matter tagMatter
	if _, err := frontmatter.Parse(bytes.NewReader(data), &matter); err != nil {
		return nil, err
	}
	return normalizeTags(matter.Tags), nil
}

// normalizeTags accepts either a list or a comma/space separated string.
func normalizeTags(raw any) []string {
	var out []string
	switch v := raw.(type) {
	case string:
		for _, field := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, strings.TrimSpace(field))
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out
}
