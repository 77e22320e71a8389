package definition

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

// Field type names accepted in declaration files.
const (
	TypeField        = "field"
	TypeID           = "id"
	TypeLabel        = "label"
	TypeCollection   = "collection"
	TypeKeyValueList = "key_value_list"
	TypeKeyValue     = "key_value"
)

// Store holds named field declarations loaded from one or more files.
type Store struct {
	definitions map[string]Entry
}

// Entry is one named declaration and the file it came from.
type Entry struct {
	Name   string
	Source string
	Fields []fields.Field
}

// LoadFS walks fsys and parses every YAML or JSON declaration file. When fsys
// is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Entry)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single declaration document.
func Parse(data []byte, source string) (*Store, error) {
	store := &Store{definitions: make(map[string]Entry)}
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Definition returns the fields declared under name.
func (s *Store) Definition(name string) ([]fields.Field, bool) {
	if s == nil {
		return nil, false
	}
	entry, ok := s.definitions[strings.TrimSpace(name)]
	if !ok {
		return nil, false
	}
	return append([]fields.Field(nil), entry.Fields...), true
}

// Names lists the declared definitions in lexical order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

type documentFile struct {
	Definitions map[string][]fieldFile `yaml:"definitions"`
}

type fieldFile struct {
	Type        string      `yaml:"type"`
	Path        pathSpec    `yaml:"path"`
	Label       string      `yaml:"label"`
	HideBlank   *bool       `yaml:"hide_blank"`
	HideMissing *bool       `yaml:"hide_missing"`
	Numbered    *bool       `yaml:"numbered"`
	Fields      []fieldFile `yaml:"fields"`
}

// pathSpec accepts either a dotted string or a list of keys.
type pathSpec record.Path

func (p *pathSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = pathSpec(record.ParsePath(node.Value))
		return nil
	case yaml.SequenceNode:
		var keys []string
		if err := node.Decode(&keys); err != nil {
			return err
		}
		*p = pathSpec(record.P(keys...))
		return nil
	default:
		return fmt.Errorf("line %d: path must be a string or a list of keys", node.Line)
	}
}

func (s *Store) add(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("definition: file %s is empty", source)
	}

	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("definition: parse %s: %w", source, err)
	}

	for rawName, decls := range doc.Definitions {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("definition: file %s declares an empty definition name", source)
		}
		if existing, exists := s.definitions[name]; exists {
			return fmt.Errorf("definition: duplicate definition %q (files %s, %s)", name, existing.Source, source)
		}

		built, err := buildFields(decls)
		if err != nil {
			return fmt.Errorf("definition: %q (file %s): %w", name, source, err)
		}
		if err := fields.Validate(built); err != nil {
			return fmt.Errorf("definition: %q (file %s): %w", name, source, err)
		}
		s.definitions[name] = Entry{Name: name, Source: source, Fields: built}
	}
	return nil
}

func buildFields(decls []fieldFile) ([]fields.Field, error) {
	out := make([]fields.Field, 0, len(decls))
	for i, decl := range decls {
		field, err := buildField(decl)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out = append(out, field)
	}
	return out, nil
}

func buildField(decl fieldFile) (fields.Field, error) {
	kind := strings.ToLower(strings.TrimSpace(decl.Type))
	if kind == "" {
		kind = TypeField
	}
	path := record.Path(decl.Path)

	var opts []fields.Option
	if decl.HideBlank != nil {
		opts = append(opts, fields.WithHideBlank(*decl.HideBlank))
	}
	if decl.HideMissing != nil {
		opts = append(opts, fields.WithHideMissing(*decl.HideMissing))
	}
	if decl.Numbered != nil {
		opts = append(opts, fields.WithNumbered(*decl.Numbered))
	}
	if len(decl.Fields) > 0 {
		if kind != TypeLabel && kind != TypeCollection {
			return nil, fmt.Errorf("type %q does not take nested fields", kind)
		}
		nested, err := buildFields(decl.Fields)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fields.WithFields(nested...))
	}

	switch kind {
	case TypeField:
		return fields.New(path, decl.Label, opts...), nil
	case TypeID:
		return fields.NewID(path, decl.Label, opts...), nil
	case TypeLabel:
		return fields.NewLabel(path, decl.Label, opts...), nil
	case TypeCollection:
		return fields.NewCollection(path, decl.Label, opts...), nil
	case TypeKeyValueList:
		return fields.NewKeyValueList(path, decl.Label, opts...), nil
	case TypeKeyValue:
		return fields.NewKeyValue(), nil
	default:
		return nil, fmt.Errorf("unknown field type %q", decl.Type)
	}
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
