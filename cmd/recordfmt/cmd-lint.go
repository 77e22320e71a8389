package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-recordfmt/pkg/definition"
	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/projector"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

type lintCmd struct {
	Paths   []string `arg:"" type:"path" help:"Definition files or directories to check."`
	Records string   `type:"existingfile" help:"Sample records; every definition is projected over them and malformed data is reported."`
}

type violation struct {
	file     string
	location string
	message  string
}

var errLintFailed = errors.New("lint failed")

func (cmd *lintCmd) Run(_ *globalOptions, s *streams) error {
	var sample *record.Collection
	if cmd.Records != "" {
		coll, err := readRecords(cmd.Records, s.in)
		if err != nil {
			return err
		}
		sample = &coll
	}

	files, err := definitionFiles(cmd.Paths)
	if err != nil {
		return err
	}

	var violations []violation
	for _, file := range files {
		violations = append(violations, lintFile(file, sample)...)
	}
	if len(violations) == 0 {
		_, err := fmt.Fprintf(s.out, "%d definition files ok\n", len(files))
		return err
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(s.err, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return fmt.Errorf("%w: %d violations", errLintFailed, len(violations))
}

func definitionFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			switch filepath.Ext(path) {
			case ".yaml", ".yml", ".json":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func lintFile(path string, sample *record.Collection) []violation {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []violation{{file: path, location: "file", message: err.Error()}}
	}
	store, err := definition.Parse(raw, path)
	if err != nil {
		return []violation{{file: path, location: "file", message: err.Error()}}
	}
	if sample == nil {
		return nil
	}

	var result []violation
	for _, name := range store.Names() {
		defs, _ := store.Definition(name)
		_, err := projector.Project(defs, *sample, fields.Context{ShowIDs: true})
		for _, single := range projector.Errors(err) {
			var malformed *fields.MalformedDataError
			location := name
			if errors.As(single, &malformed) {
				location = fmt.Sprintf("%s record %d", name, malformed.Record)
			}
			result = append(result, violation{file: path, location: location, message: single.Error()})
		}
	}
	return result
}
