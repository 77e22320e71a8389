// Package capitalize implements the configurable display transform applied
// to rendered label keys before they reach an adapter.
package capitalize

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/atomic"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Mode names a capitalization style.
type Mode string

const (
	None       Mode = ""
	Downcase   Mode = "downcase"
	Capitalize Mode = "capitalize"
	Upcase     Mode = "upcase"
)

// Warning is written once to the error output when an unsupported mode is
// used.
const Warning = "Cannot use such capitalization. Try one of downcase, capitalize, upcase."

// Scope selects how deep Apply rewrites label keys.
type Scope uint8

const (
	// ScopeTopLevel rewrites only the direct keys of each rendered mapping.
	ScopeTopLevel Scope = iota
	// ScopeNested also rewrites labels inside groups and collections.
	ScopeNested
)

// Option configures a Transformer.
type Option func(*Transformer)

// WithScope selects the rewrite depth.
func WithScope(scope Scope) Option {
	return func(t *Transformer) {
		t.scope = scope
	}
}

// WithErrorOutput redirects the unsupported-mode warning (os.Stderr by
// default).
func WithErrorOutput(w io.Writer) Option {
	return func(t *Transformer) {
		if w != nil {
			t.errOut = w
		}
	}
}

// Transformer rewrites keys according to one configured mode. It is meant to
// be built once from settings and shared read-only; building a new one is how
// the mode is reconfigured.
type Transformer struct {
	mode      Mode
	supported bool
	scope     Scope
	errOut    io.Writer
	warned    atomic.Bool
}

// New builds a transformer for the raw mode string. Matching ignores case and
// surrounding space; "none" is accepted as an alias for the empty mode.
func New(mode string, opts ...Option) *Transformer {
	normalized := Mode(strings.ToLower(strings.TrimSpace(mode)))
	if normalized == "none" {
		normalized = None
	}
	t := &Transformer{
		mode:   normalized,
		errOut: os.Stderr,
	}
	switch normalized {
	case None, Downcase, Capitalize, Upcase:
		t.supported = true
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Mode returns the configured mode.
func (t *Transformer) Mode() Mode {
	if t == nil {
		return None
	}
	return t.mode
}

// Supported reports whether the configured mode is one this package knows.
func (t *Transformer) Supported() bool {
	return t == nil || t.supported
}

// Transform rewrites a single key. Unsupported modes warn on first use and
// leave keys untouched.
func (t *Transformer) Transform(key string) string {
	if t == nil {
		return key
	}
	if !t.supported {
		t.warn()
		return key
	}
	switch t.mode {
	case Downcase:
		return cases.Lower(language.Und).String(key)
	case Upcase:
		return cases.Upper(language.Und).String(key)
	case Capitalize:
		return capitalize(key)
	default:
		return key
	}
}

// Apply returns copies of maps whose label keys have been transformed. Index
// and raw keys are never touched. The inputs are not modified. Labels that
// collide after the transform are merged, the later value winning.
//
// An unsupported mode warns on the first call, even when maps is empty, and
// returns maps unchanged.
func (t *Transformer) Apply(maps []*tree.Map) []*tree.Map {
	if t == nil || t.mode == None {
		return maps
	}
	if !t.supported {
		t.warn()
		return maps
	}
	rename := func(k tree.Key) tree.Key {
		if k.Kind == tree.KeyLabel {
			k.Name = t.Transform(k.Name)
		}
		return k
	}
	out := make([]*tree.Map, len(maps))
	for i, m := range maps {
		out[i] = m.RenameKeys(rename, t.scope == ScopeNested)
	}
	return out
}

func (t *Transformer) warn() {
	if t.warned.CompareAndSwap(false, true) {
		fmt.Fprintln(t.errOut, Warning)
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(key string) string {
	if key == "" {
		return key
	}
	_, size := utf8.DecodeRuneInString(key)
	return cases.Upper(language.Und).String(key[:size]) + cases.Lower(language.Und).String(key[size:])
}
