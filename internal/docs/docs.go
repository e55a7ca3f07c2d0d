// Package docs reads the per-era standard text shown alongside a section.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrUnavailable is returned when an era has no text for a chapter.
var ErrUnavailable = errors.New("content not available in this era")

// Source fetches section text.
type Source interface {
	// Section returns the markdown for stableName within chapter in era.
	Section(ctx context.Context, era, chapter, stableName string) (string, error)
}

// DirSource reads <root>/<era>/<chapter>.md.
type DirSource struct {
	root string
}

// NewDirSource creates a DirSource rooted at root.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

// Section implements Source.
//
// Postcondition: Returns ErrUnavailable when the chapter file does not exist.
func (d *DirSource) Section(ctx context.Context, era, chapter, stableName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if chapter == "" || strings.ContainsAny(era+chapter, `/\`) || strings.Contains(chapter, "..") {
		return "", ErrUnavailable
	}
	path := filepath.Join(d.root, era, chapter+".md")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrUnavailable
	}
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	return ExtractSection(string(data), stableName), nil
}

var headingPrefix = regexp.MustCompile(`^(#{1,6})`)

// ExtractSection returns the part of markdown that starts at the heading
// carrying <a id="stableName"> and ends before the next heading of the same
// or a higher level. Without the anchor the whole document is returned, as
// chapter-level sections own their file.
func ExtractSection(markdown, stableName string) string {
	anchor := strings.Index(markdown, `<a id="`+stableName+`"`)
	if anchor < 0 {
		return markdown
	}
	lineStart := strings.LastIndexByte(markdown[:anchor], '\n') + 1

	level := 2
	if m := headingPrefix.FindString(markdown[lineStart:anchor]); m != "" {
		level = len(m)
	}
	next := regexp.MustCompile(fmt.Sprintf(`(?m)^#{1,%d}\s+`, level))

	end := len(markdown)
	rest := markdown[anchor:]
	if loc := next.FindStringIndex(rest); loc != nil {
		end = anchor + loc[0]
	}
	return strings.TrimSpace(markdown[lineStart:end])
}

var wikilink = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Links returns the [[stable.name]] targets referenced in text, in order.
func Links(text string) []string {
	var out []string
	for _, m := range wikilink.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// PlainLinks rewrites [[stable.name]] as [stable.name] for terminal display.
func PlainLinks(text string) string {
	return wikilink.ReplaceAllString(text, "[$1]")
}
