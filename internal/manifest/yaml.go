package manifest

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// parseYAML builds the node tree from YAML source via the yaml.v3 node API,
// which keeps key order and reports line/column positions for every scalar.
func parseYAML(src []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, entities.NewDocumentError(-1, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, entities.NewDocumentError(0, errors.New("empty document"))
	}

	return yamlNode(doc.Content[0], src, lineOffsets(src))
}

func yamlNode(n *yaml.Node, src []byte, lines []int) (*Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return yamlMapping(n, src, lines)
	case yaml.SequenceNode:
		node := &Node{kind: KindSequence}
		for _, item := range n.Content {
			child, err := yamlNode(item, src, lines)
			if err != nil {
				return nil, err
			}
			node.items = append(node.items, child)
		}
		return node, nil
	case yaml.ScalarNode:
		return yamlScalar(n, src, lines)
	case yaml.AliasNode:
		return nil, entities.NewDocumentError(
			yamlOffset(n, lines), errors.New("aliases are not supported in manifests"),
		)
	default:
		return nil, entities.NewDocumentError(
			yamlOffset(n, lines), fmt.Errorf("unsupported node kind %d", n.Kind),
		)
	}
}

func yamlMapping(n *yaml.Node, src []byte, lines []int) (*Node, error) {
	node := newMapping()

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, entities.NewDocumentError(
				yamlOffset(keyNode, lines), errors.New("mapping key is not a scalar"),
			)
		}

		child, err := yamlNode(n.Content[i+1], src, lines)
		if err != nil {
			return nil, err
		}

		if !node.put(keyNode.Value, child) {
			return nil, entities.NewDocumentError(
				yamlOffset(keyNode, lines), fmt.Errorf("duplicate key %q", keyNode.Value),
			)
		}
	}

	return node, nil
}

func yamlScalar(n *yaml.Node, src []byte, lines []int) (*Node, error) {
	start := yamlOffset(n, lines)

	kind := KindString
	switch n.Tag {
	case "!!int", "!!float":
		kind = KindNumber
	case "!!bool":
		kind = KindBool
	case "!!null":
		kind = KindNull
	}

	node := &Node{kind: kind, str: n.Value, start: start}

	switch {
	case n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0:
		// Block scalars span lines; they are readable but not rewritable.
		node.end = start
	case n.Style&yaml.DoubleQuotedStyle != 0:
		end, err := doubleQuotedEnd(src, start)
		if err != nil {
			return nil, entities.NewDocumentError(start, err)
		}
		node.end, node.style, node.spliceable = end, '"', true
	case n.Style&yaml.SingleQuotedStyle != 0:
		end, err := singleQuotedEnd(src, start)
		if err != nil {
			return nil, entities.NewDocumentError(start, err)
		}
		node.end, node.style, node.spliceable = end, '\'', true
	default:
		end := plainScalarEnd(src, start)
		node.end = end
		// A plain scalar may fold across lines; only single-line tokens
		// whose raw text matches the decoded value can be spliced.
		node.spliceable = start <= end && string(src[start:end]) == n.Value
	}

	return node, nil
}

// yamlOffset converts a node's 1-based line/column position to a byte offset.
func yamlOffset(n *yaml.Node, lines []int) int {
	if n.Line < 1 || n.Line > len(lines) {
		return -1
	}
	return lines[n.Line-1] + n.Column - 1
}

// lineOffsets returns the byte offset of the start of every line.
func lineOffsets(src []byte) []int {
	offsets := []int{0}
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func doubleQuotedEnd(src []byte, start int) (int, error) {
	if start < 0 || start >= len(src) || src[start] != '"' {
		return 0, errors.New("malformed double-quoted scalar")
	}
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}
	return 0, errors.New("unterminated double-quoted scalar")
}

func singleQuotedEnd(src []byte, start int) (int, error) {
	if start < 0 || start >= len(src) || src[start] != '\'' {
		return 0, errors.New("malformed single-quoted scalar")
	}
	for i := start + 1; i < len(src); i++ {
		if src[i] != '\'' {
			continue
		}
		if i+1 < len(src) && src[i+1] == '\'' {
			i++ // escaped quote
			continue
		}
		return i + 1, nil
	}
	return 0, errors.New("unterminated single-quoted scalar")
}

// plainScalarEnd scans a plain scalar token up to the end of its line, a
// trailing comment, or a flow terminator, then trims trailing whitespace.
func plainScalarEnd(src []byte, start int) int {
	if start < 0 {
		return start
	}

	end := len(src)
	for i := start; i < len(src); i++ {
		c := src[i]
		if c == '\n' || c == '\r' || c == ',' || c == ']' || c == '}' {
			end = i
			break
		}
		if c == '#' && i > start && (src[i-1] == ' ' || src[i-1] == '\t') {
			end = i
			break
		}
	}

	for end > start && (src[end-1] == ' ' || src[end-1] == '\t') {
		end--
	}
	return end
}
