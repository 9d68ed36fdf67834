// internal/records/loader.go
package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"kbsite/internal/util"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Record is one untyped key/value entry loaded from a data file.
type Record map[string]any

var (
	jsonExts = []string{".json", ".jsonld"}
	yamlExts = []string{".yaml", ".yml"}
	textExts = []string{".txt", ".md", ".llm"}

	// DataExts are the extensions LoadDir reads.
	DataExts = append(append(append([]string{}, jsonExts...), yamlExts...), textExts...)

	// ListingExts are the extensions shown in the index page file listing.
	ListingExts = append(append([]string{}, DataExts...), ".jsonl")

	structuredExts = append(append([]string{}, jsonExts...), yamlExts...)
)

// wrapperKeys name top-level lists that hold the real records.
var wrapperKeys = []string{"locations", "services", "faqs"}

// LoadFile reads path and returns its records. A parse failure returns an
// empty list together with the error; it is up to the caller to log it and
// carry on with the other files.
func LoadFile(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return Parse(path, raw)
}

// Parse decodes raw according to the extension of name. JSON and YAML files are
// parsed directly; .txt, .md and .llm files are sniffed for JSON or YAML.
// Unknown extensions yield no records.
func Parse(name string, raw []byte) ([]Record, error) {
	content := bytes.TrimSpace(raw)
	if len(content) == 0 {
		return nil, nil
	}

	var (
		payload any
		err     error
	)
	switch {
	case util.HasExt(name, jsonExts...):
		payload, err = decodeJSON(content)
	case util.HasExt(name, yamlExts...):
		payload, err = decodeYAML(content)
	case util.HasExt(name, textExts...):
		payload, err = sniff(content)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(name), err)
	}
	return Normalize(payload), nil
}

// sniff parses free-form text that may hold structured data. Content that looks
// like JSON is tried as JSON first and then as YAML (which also accepts flow
// style); anything else is tried as YAML only. Plain prose decodes to a scalar
// and yields nothing.
func sniff(content []byte) (any, error) {
	if content[0] == '{' || content[0] == '[' {
		payload, jsonErr := decodeJSON(content)
		if jsonErr == nil {
			return payload, nil
		}
		payload, yamlErr := decodeYAML(content)
		if yamlErr != nil {
			return nil, errors.Join(jsonErr, yamlErr)
		}
		return payload, nil
	}

	payload, err := decodeYAML(content)
	if err != nil {
		return nil, err
	}
	switch payload.(type) {
	case map[string]any, []any:
		return payload, nil
	}
	return nil, nil
}

// decodeJSON keeps numbers as json.Number so long IDs and phone numbers
// survive unchanged.
func decodeJSON(content []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: unexpected data after top-level value")
	}
	return v, nil
}

func decodeYAML(content []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(content, &v); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return normalizeValue(v), nil
}

// normalizeValue rewrites YAML mappings with non-string keys into
// map[string]any so the rest of the package sees one map type.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeValue(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalizeValue(val)
		}
		return t
	}
	return v
}

// Normalize turns a decoded payload into a flat record list. A single mapping
// becomes a one-element list, mappings that wrap their records under one of the
// wrapper keys are unwrapped, and anything that is not a mapping is dropped.
func Normalize(payload any) []Record {
	var items []any
	switch p := payload.(type) {
	case []any:
		items = p
	case map[string]any:
		items = []any{p}
	default:
		return nil
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if inner, ok := unwrap(m); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, Record(m))
	}
	return out
}

func unwrap(m map[string]any) ([]Record, bool) {
	for _, key := range wrapperKeys {
		list, ok := m[key].([]any)
		if !ok {
			continue
		}
		inner := []Record{}
		for _, item := range list {
			if rec, ok := item.(map[string]any); ok {
				inner = append(inner, Record(rec))
			}
		}
		// An empty list wraps zero records. A non-empty list without mappings
		// (say, service names on an organization) is a field, not a wrapper.
		if len(list) == 0 || len(inner) > 0 {
			return inner, true
		}
	}
	return nil, false
}

// Entry is a record together with the file it came from.
type Entry struct {
	Record Record
	File   string
}

// DirResult is the outcome of loading every data file in one directory.
type DirResult struct {
	Dir     string
	Entries []Entry
	Files   int
	Errors  []error
}

// LoadDir loads every data file directly inside dir, in file name order.
// Files that fail to parse are reported in Errors and contribute no entries.
func LoadDir(dir string) DirResult {
	res := DirResult{Dir: dir}
	entries, err := os.ReadDir(dir)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Errorf("could not list %s: %w", dir, err))
		return res
	}
	for _, de := range entries {
		if de.IsDir() || !util.HasExt(de.Name(), DataExts...) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		res.Files++
		recs, err := LoadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		for _, r := range recs {
			res.Entries = append(res.Entries, Entry{Record: r, File: path})
		}
	}
	return res
}

// ListFiles walks root recursively and returns the files with one of exts,
// sorted by path.
func ListFiles(root string, exts ...string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if util.HasExt(d.Name(), exts...) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}

// FirstRecord returns the first record of the first file in dir (by sorted name)
// that yields one. Only JSON and YAML files are considered.
func FirstRecord(dir string) (Entry, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Entry{}, false
	}
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || !util.HasExt(name, structuredExts...) {
			continue
		}
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		recs, err := parseWhole(path, raw)
		if err != nil || len(recs) == 0 {
			continue
		}
		return Entry{Record: recs[0], File: path}, true
	}
	return Entry{}, false
}

// parseWhole decodes without unwrapping, so an organization that lists its
// services or locations is still returned as the organization record.
func parseWhole(name string, raw []byte) ([]Record, error) {
	content := bytes.TrimSpace(raw)
	if len(content) == 0 {
		return nil, nil
	}
	var (
		payload any
		err     error
	)
	if util.HasExt(name, yamlExts...) {
		payload, err = decodeYAML(content)
	} else {
		payload, err = decodeJSON(content)
	}
	if err != nil {
		return nil, err
	}
	switch p := payload.(type) {
	case map[string]any:
		return []Record{p}, nil
	case []any:
		for _, item := range p {
			if m, ok := item.(map[string]any); ok {
				return []Record{m}, nil
			}
		}
	}
	return nil, nil
}
