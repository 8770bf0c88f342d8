package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// parseJSON builds the node tree from JSON source using the streaming
// tokenizer, which yields keys in document order and byte offsets for
// every token end.
func parseJSON(src []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()

	root, err := parseJSONValue(dec, src)
	if err != nil {
		return nil, jsonError(dec, err)
	}

	if _, trailing := dec.Token(); !errors.Is(trailing, io.EOF) {
		return nil, entities.NewDocumentError(
			int(dec.InputOffset()), errors.New("unexpected content after top-level value"),
		)
	}

	return root, nil
}

func parseJSONValue(dec *json.Decoder, src []byte) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonNode(dec, src, tok)
}

func jsonNode(dec *json.Decoder, src []byte, tok json.Token) (*Node, error) {
	end := int(dec.InputOffset())

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseJSONObject(dec, src)
		case '[':
			return parseJSONArray(dec, src)
		default:
			return nil, fmt.Errorf("unexpected %q", v.String())
		}
	case string:
		start, err := jsonStringStart(src, end)
		if err != nil {
			return nil, err
		}
		return &Node{kind: KindString, str: v, start: start, end: end, style: '"', spliceable: true}, nil
	case json.Number:
		raw := v.String()
		return &Node{kind: KindNumber, str: raw, start: end - len(raw), end: end, spliceable: true}, nil
	case bool:
		raw := "true"
		if !v {
			raw = "false"
		}
		return &Node{kind: KindBool, str: raw, start: end - len(raw), end: end, spliceable: true}, nil
	case nil:
		return &Node{kind: KindNull, str: "null", start: end - len("null"), end: end, spliceable: true}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseJSONObject(dec *json.Decoder, src []byte) (*Node, error) {
	node := newMapping()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		child, childErr := parseJSONValue(dec, src)
		if childErr != nil {
			return nil, childErr
		}

		if !node.put(key, child) {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return node, nil
}

func parseJSONArray(dec *json.Decoder, src []byte) (*Node, error) {
	node := &Node{kind: KindSequence}

	for dec.More() {
		child, err := parseJSONValue(dec, src)
		if err != nil {
			return nil, err
		}
		node.items = append(node.items, child)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return node, nil
}

// jsonStringStart locates the opening quote of a string token whose closing
// quote sits at end-1. Escaped quotes are recognised by counting the run of
// preceding backslashes.
func jsonStringStart(src []byte, end int) (int, error) {
	if end < 2 || src[end-1] != '"' {
		return 0, fmt.Errorf("malformed string token at offset %d", end)
	}

	for i := end - 2; i >= 0; i-- {
		if src[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && src[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unterminated string token at offset %d", end)
}

func jsonError(dec *json.Decoder, err error) error {
	var parseErr *entities.ParseError
	if errors.As(err, &parseErr) {
		return err
	}

	pos := int(dec.InputOffset())
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		pos = int(syntaxErr.Offset)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = errors.New("unexpected end of document")
	}

	return entities.NewDocumentError(pos, err)
}
