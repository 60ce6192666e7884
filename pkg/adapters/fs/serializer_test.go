package fs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fallow-md/fallow/pkg/core"
)

func TestMarkdownSerializerRoundtrip(t *testing.T) {
	n := core.Note{
		ID:      "essays/draft",
		Content: "A body of prose.\n",
		Metadata: core.Metadata{
			"title":         "Draft",
			"interval":      2.6,
			"ease":          2.5,
			"last-reviewed": "2026-06-01T00:00:00Z",
			"contexts":      []interface{}{"journal", "drafts"},
		},
	}

	s := NewMarkdownSerializer()

	data, err := s.Serialize(n)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	parsed, err := s.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if strings.TrimSpace(parsed.Content) != strings.TrimSpace(n.Content) {
		t.Errorf("Content mismatch. Want %q, got %q", n.Content, parsed.Content)
	}
	if parsed.Metadata["title"] != "Draft" {
		t.Errorf("Metadata 'title' mismatch: %v", parsed.Metadata["title"])
	}
	if parsed.Metadata["interval"] != 2.6 {
		t.Errorf("Metadata 'interval' mismatch: %v (%T)", parsed.Metadata["interval"], parsed.Metadata["interval"])
	}
	contexts, ok := parsed.Metadata["contexts"].([]interface{})
	if !ok || len(contexts) != 2 || contexts[0] != "journal" {
		t.Errorf("Metadata 'contexts' mismatch: %v", parsed.Metadata["contexts"])
	}
}

func TestMarkdownSerializerNoFrontmatter(t *testing.T) {
	input := "Just prose, no metadata.\n"

	s := NewMarkdownSerializer()
	parsed, err := s.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Content != input {
		t.Errorf("Content mismatch. Want %q, got %q", input, parsed.Content)
	}
	if len(parsed.Metadata) != 0 {
		t.Errorf("expected empty metadata, got %v", parsed.Metadata)
	}

	// A note without metadata serializes without a frontmatter block.
	data, err := s.Serialize(*parsed)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if bytes.HasPrefix(data, []byte("---")) {
		t.Errorf("unexpected frontmatter block: %q", data)
	}
}

func TestMarkdownSerializerHorizontalRuleBody(t *testing.T) {
	// A --- later in the body is a horizontal rule, not frontmatter.
	input := "Intro\n\n---\n\nOutro\n"

	s := NewMarkdownSerializer()
	parsed, err := s.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Content != input {
		t.Errorf("Content mismatch. Want %q, got %q", input, parsed.Content)
	}
}

func TestMarkdownSerializerUnclosedFrontmatter(t *testing.T) {
	input := "---\ntitle: Broken\n"

	s := NewMarkdownSerializer()
	if _, err := s.Parse(strings.NewReader(input)); err == nil {
		t.Error("expected error for unclosed frontmatter")
	}
}
