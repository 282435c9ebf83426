// Package markdown extracts the parts of Markdown documents that link
// checking cares about: ATX headings and the anchors GitHub derives from them.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Setext headings (underlined with === or ---) are not recognized.
var headingRegex = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)

var slugDrop = regexp.MustCompile(`[^\p{L}\p{N} _-]`)

// Slug converts heading text into the anchor GitHub generates for it:
// lowercased, punctuation dropped, spaces turned into hyphens.
func Slug(heading string) string {
	s := strings.ToLower(strings.TrimSpace(heading))
	s = slugDrop.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, " ", "-")
}

// Headings returns the text of every ATX heading in the document.
// Fenced code blocks are skipped, so a '# comment' inside an example
// doesn't produce an anchor.
func Headings(r io.Reader) ([]string, error) {
	var headings []string
	inFence := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		m := headingRegex.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		headings = append(headings, m[1])
	}
	return headings, scanner.Err()
}

// Anchors returns every anchor the rendered document exposes, including the
// -1, -2 suffixes GitHub appends to repeated headings.
func Anchors(r io.Reader) (map[string]struct{}, error) {
	headings, err := Headings(r)
	if err != nil {
		return nil, err
	}
	anchors := make(map[string]struct{}, len(headings))
	counts := make(map[string]int, len(headings))
	for _, h := range headings {
		slug := Slug(h)
		if n := counts[slug]; n > 0 {
			anchors[fmt.Sprintf("%s-%d", slug, n)] = struct{}{}
		} else {
			anchors[slug] = struct{}{}
		}
		counts[slug]++
	}
	return anchors, nil
}

// HasAnchor reports whether the document contains a heading whose anchor
// matches fragment. The lookup is case-insensitive because GitHub lowercases
// every anchor it generates.
func HasAnchor(r io.Reader, fragment string) (bool, error) {
	anchors, err := Anchors(r)
	if err != nil {
		return false, err
	}
	_, ok := anchors[strings.ToLower(fragment)]
	return ok, nil
}
