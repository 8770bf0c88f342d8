// Package manifest is a format-preserving document model for package
// manifests. A loaded Document keeps the original source text, the detected
// indentation unit, and the line-ending style; mutations are recorded as
// targeted splices over scalar value tokens, so serializing an untouched
// document reproduces the input byte for byte.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// Format identifies the manifest encoding. It is always chosen by the
// caller (hint or file extension), never sniffed from content.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat maps a file extension to a Format. Unknown extensions are a
// ParseError: ambiguous input must fail rather than guess.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, &entities.ParseError{
			Kind:  entities.ParseKindDocument,
			Input: path,
			Pos:   -1,
			Err:   errors.New("cannot determine manifest format from file extension"),
		}
	}
}

// edit is one pending splice over the source text.
type edit struct {
	start, end int
	text       string
}

// Document is a loaded manifest. It is owned by a single invocation and
// must not be shared across goroutines.
type Document struct {
	src     []byte
	format  Format
	indent  string
	newline string
	root    *Node
	edits   []edit
}

// Load parses source text in the given format. The top-level value must be
// a mapping. Indentation and line-ending style are detected up front and
// inconsistent indentation fails fast.
func Load(src []byte, format Format) (*Document, error) {
	indent, err := detectIndent(src, format)
	if err != nil {
		return nil, err
	}

	var root *Node
	switch format {
	case FormatJSON:
		root, err = parseJSON(src)
	case FormatYAML:
		root, err = parseYAML(src)
	default:
		return nil, &entities.ParseError{
			Kind: entities.ParseKindDocument,
			Pos:  -1,
			Err:  fmt.Errorf("unsupported manifest format %d", format),
		}
	}
	if err != nil {
		return nil, err
	}

	if root.kind != KindMapping {
		return nil, entities.NewDocumentError(0, errors.New("top-level value must be a mapping"))
	}

	return &Document{
		src:     src,
		format:  format,
		indent:  indent,
		newline: detectNewline(src),
		root:    root,
	}, nil
}

// Format returns the encoding the document was loaded as.
func (d *Document) Format() Format { return d.format }

// Indent returns the detected indentation unit ("  ", "    ", "\t", ...).
// Empty when the document has no indented lines.
func (d *Document) Indent() string { return d.indent }

// LineEnding returns the detected line-ending style, "\n" or "\r\n".
func (d *Document) LineEnding() string { return d.newline }

// Root returns the top-level mapping.
func (d *Document) Root() *Node { return d.root }

// Section walks mapping keys and returns the mapping node at the given
// path, or false when any step is absent or not a mapping.
func (d *Document) Section(path ...string) (*Node, bool) {
	node := d.root
	for _, key := range path {
		child, ok := node.Child(key)
		if !ok || child.kind != KindMapping {
			return nil, false
		}
		node = child
	}
	return node, true
}

// SetString replaces the string scalar at the given path with a new value,
// keeping the original quoting style. Only the value's own token is
// touched; every other byte of the document is left as-is.
func (d *Document) SetString(path []string, value string) error {
	if len(path) == 0 {
		return errors.New("empty path")
	}

	node := d.root
	for _, key := range path {
		child, ok := node.Child(key)
		if !ok {
			return fmt.Errorf("key %q not found", strings.Join(path, "."))
		}
		node = child
	}

	if node.kind != KindString {
		return fmt.Errorf("value at %q is not a string", strings.Join(path, "."))
	}
	if !node.spliceable {
		return fmt.Errorf("value at %q uses an unsupported scalar layout", strings.Join(path, "."))
	}
	if node.str == value {
		return nil
	}

	encoded, err := encodeScalar(d.format, node.style, value)
	if err != nil {
		return err
	}

	// Writing the original token back cancels any pending edit instead of
	// leaving a no-op splice behind.
	if encoded == string(d.src[node.start:node.end]) {
		for i := range d.edits {
			if d.edits[i].start == node.start {
				d.edits = append(d.edits[:i], d.edits[i+1:]...)
				break
			}
		}
		node.str = value
		return nil
	}

	// A second write to the same token supersedes the first.
	for i := range d.edits {
		if d.edits[i].start == node.start {
			d.edits[i].text = encoded
			node.str = value
			return nil
		}
	}

	d.edits = append(d.edits, edit{start: node.start, end: node.end, text: encoded})
	node.str = value
	return nil
}

// Changed reports whether any splice has been recorded.
func (d *Document) Changed() bool { return len(d.edits) > 0 }

// Serialize replays the original source with all recorded splices applied.
// An unmutated document serializes byte-identical to its input.
func (d *Document) Serialize() []byte {
	if len(d.edits) == 0 {
		out := make([]byte, len(d.src))
		copy(out, d.src)
		return out
	}

	edits := make([]edit, len(d.edits))
	copy(edits, d.edits)
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var buf bytes.Buffer
	buf.Grow(len(d.src))
	prev := 0
	for _, e := range edits {
		buf.Write(d.src[prev:e.start])
		buf.WriteString(e.text)
		prev = e.end
	}
	buf.Write(d.src[prev:])
	return buf.Bytes()
}
