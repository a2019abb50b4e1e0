package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics checks that the readme lists exactly the available topics.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); m != nil {
			listed = append(listed, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		if _, err := Topic(topic); err != nil {
			t.Errorf("Topic(%q) error = %v", topic, err)
		}
	}
	slices.Sort(listed)
	if got := Topics(); !slices.Equal(got, listed) {
		t.Errorf("Topics() = %q, readme lists %q", got, listed)
	}
}

func TestConcat(t *testing.T) {
	all, err := Concat("*")
	if err != nil {
		t.Fatalf("Concat() error = %v", err)
	}
	for _, topic := range Topics() {
		content, _ := Topic(topic)
		if !strings.Contains(all, content) {
			t.Errorf("Concat(*) misses topic %q", topic)
		}
	}
	if _, err := Concat("readme", "nope"); err == nil {
		t.Errorf("Concat() error = nil, want an error for an unknown topic")
	}
}

// TestTitles checks that every topic starts with a level 1 heading.
func TestTitles(t *testing.T) {
	for _, topic := range append(Topics(), readme) {
		content, _ := Topic(topic)
		source := []byte(content)
		root := goldmark.DefaultParser().Parse(text.NewReader(source))
		h, ok := root.FirstChild().(*ast.Heading)
		if !ok || h.Level != 1 {
			t.Errorf("topic %q does not start with a level 1 heading", topic)
		}
	}
}
