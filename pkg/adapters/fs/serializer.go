package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fallow-md/fallow/pkg/core"
)

// Serializer defines how to read and write a note file format.
type Serializer interface {
	// Parse reads from r and returns a Note (without ID).
	Parse(r io.Reader) (*core.Note, error)
	// Serialize converts the Note to bytes.
	Serialize(n core.Note) ([]byte, error)
}

// MarkdownSerializer handles Markdown files with optional YAML
// frontmatter, the storage format for notes.
type MarkdownSerializer struct{}

// NewMarkdownSerializer creates a new Markdown serializer.
func NewMarkdownSerializer() *MarkdownSerializer {
	return &MarkdownSerializer{}
}

// Parse decodes a stream into a Note. It detects a frontmatter block
// delimited by --- at the very beginning of the stream.
func (s *MarkdownSerializer) Parse(r io.Reader) (*core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	n := &core.Note{Metadata: make(core.Metadata)}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		n.Content = string(data)
		return n, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return nil, errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &n.Metadata); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	n.Content = strings.TrimPrefix(string(parts[1]), "\n")
	n.Content = strings.TrimPrefix(n.Content, "\r\n")

	return n, nil
}

// Serialize writes the note back as Markdown with frontmatter.
func (s *MarkdownSerializer) Serialize(n core.Note) ([]byte, error) {
	var buf bytes.Buffer
	if len(n.Metadata) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(n.Metadata); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}
