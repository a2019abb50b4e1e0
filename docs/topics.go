// Package docs holds the user documentation of mfw, one markdown file per topic.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// readme is the topic listing all the others.
const readme = "readme"

// Topic returns the content of a documentation topic.
func Topic(topic string) (string, error) {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, available topics are %q: %w", topic, Topics(), err)
	}
	return string(content), nil
}

// Concat returns the content of several topics, one after the other. The topic "*" stands for all
// topics but the readme.
func Concat(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		expanded := []string{topic}
		if topic == "*" {
			expanded = Topics()
		}
		for _, t := range expanded {
			content, err := Topic(t)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Topics returns the names of all topics but the readme, sorted.
func Topics() []string {
	var topics []string
	entries, _ := fs.ReadDir(docs, ".")
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || e.IsDir() || name == readme {
			continue
		}
		topics = append(topics, name)
	}
	slices.Sort(topics)
	return topics
}
