package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// FS contains the Markdown help pages bundled with the wr binary.
//
//go:embed help
var FS embed.FS

// Help returns the help page for topic, or the overview when topic is empty.
func Help(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		topic = "index"
	}
	data, err := FS.ReadFile(path.Join("help", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Topics lists every help topic except the overview.
func Topics() []string {
	entries, err := fs.ReadDir(FS, "help")
	if err != nil {
		return nil
	}
	var topics []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != "index" {
			topics = append(topics, name)
		}
	}
	sort.Strings(topics)
	return topics
}
