// Package message formats the human-readable messages adapters print for
// single-result commands, and the structured document that carries them.
package message

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// ErrMissingParam is returned when a template references a placeholder the
// params do not provide.
var ErrMissingParam = errors.New("message: missing parameter")

// Keys of the message document, in output order.
const (
	KeyMessage = "message"
	KeyID      = "id"
	KeyName    = "name"
)

// Interpolate replaces %{name} placeholders with the matching params value
// and "%%" with "%". Nil params disable interpolation entirely.
func Interpolate(template string, params map[string]any) (string, error) {
	if params == nil {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '%' || i+1 >= len(template) {
			b.WriteByte(ch)
			continue
		}
		switch template[i+1] {
		case '%':
			b.WriteByte('%')
			i++
		case '{':
			end := strings.IndexByte(template[i+2:], '}')
			if end < 0 {
				b.WriteByte(ch)
				continue
			}
			name := template[i+2 : i+2+end]
			value, ok := params[name]
			if !ok {
				return "", fmt.Errorf("%w %q", ErrMissingParam, name)
			}
			fmt.Fprint(&b, value)
			i += end + 2
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}

// Document interpolates template and builds the message mapping: message
// first, then id and name when params carry them. Keys are raw keys, so
// display transforms leave them alone.
func Document(template string, params map[string]any) (*tree.Map, error) {
	text, err := Interpolate(template, params)
	if err != nil {
		return nil, err
	}
	doc := tree.NewMap(tree.Entry{Key: tree.Raw(KeyMessage), Value: tree.Scalar{Value: text}})
	for _, key := range []string{KeyID, KeyName} {
		if value, ok := params[key]; ok {
			doc.Set(tree.Raw(key), tree.ValueOf(value))
		}
	}
	return doc, nil
}
