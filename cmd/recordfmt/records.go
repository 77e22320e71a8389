package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-recordfmt/pkg/record"
)

// readRecords loads records from path, or from in when path is "-". The
// document is either a list of records or a listing envelope:
//
//	{"results": [...], "total": 40, "subtotal": 40, "page": 1, "per_page": 20,
//	 "search": "", "sort": {"by": "name", "order": "asc"}}
func readRecords(path string, in io.Reader) (record.Collection, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return record.Collection{}, fmt.Errorf("read records: %w", err)
	}

	doc, err := decodeDocument(data, path)
	if err != nil {
		return record.Collection{}, err
	}
	return collectionOf(normalize(doc))
}

func decodeDocument(data []byte, path string) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []any{}, nil
	}

	var doc any
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" || trimmed[0] == '[' || trimmed[0] == '{' {
		if err := jsoniter.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode records %s: %w", path, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode records %s: %w", path, err)
	}
	return doc, nil
}

func collectionOf(doc any) (record.Collection, error) {
	switch typed := doc.(type) {
	case []any:
		return record.NewCollection(typed...), nil
	case map[string]any:
		results, ok := typed["results"]
		if !ok {
			return record.NewCollection(typed), nil
		}
		items, ok := record.Sequence(results)
		if !ok {
			return record.Collection{}, fmt.Errorf("decode records: results must be a list, got %T", results)
		}
		coll := record.NewCollection(items...)
		coll.Meta.Total = intOr(typed["total"], coll.Meta.Total)
		coll.Meta.Subtotal = intOr(typed["subtotal"], coll.Meta.Subtotal)
		coll.Meta.Page = intOr(typed["page"], coll.Meta.Page)
		coll.Meta.PerPage = intOr(typed["per_page"], coll.Meta.PerPage)
		coll.Meta.Search, _ = typed["search"].(string)
		if sort, ok := typed["sort"].(map[string]any); ok {
			coll.Meta.SortBy, _ = sort["by"].(string)
			coll.Meta.SortOrder, _ = sort["order"].(string)
		}
		return coll, nil
	default:
		return record.Collection{}, fmt.Errorf("decode records: expected a list or an object, got %T", doc)
	}
}

// normalize turns whole JSON numbers into ints so ids print as 112, not
// 112.0, and string-keys YAML mappings.
func normalize(value any) any {
	switch typed := value.(type) {
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) < 1<<53 {
			return int64(typed)
		}
		return typed
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalize(item)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case []any:
		for i, item := range typed {
			typed[i] = normalize(item)
		}
		return typed
	default:
		return value
	}
}

func intOr(value any, fallback int) int {
	switch typed := value.(type) {
	case int:
		return typed
	case int64:
		return int(typed)
	default:
		return fallback
	}
}
