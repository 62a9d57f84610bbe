// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the translation files for missing or orphaned keys.
// It scans Go sources for i18n.T("key") calls and HTML templates for
// .T "key" calls and compares them against the YAML locale files.
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	goKeyRe   = regexp.MustCompile(`(?:i18n\.T|lz\.T|\.T)\("([a-z_]+(?:\.[a-z_]+)+)"`)
	goLitRe   = regexp.MustCompile(`"(web\.[a-z_]+(?:\.[a-z_]+)+|cli\.[a-z_]+(?:\.[a-z_]+)+)"`)
	tmplKeyRe = regexp.MustCompile(`\.T "([a-z_]+(?:\.[a-z_]+)+)"`)
)

// report is the outcome of one lint run.
type report struct {
	Used     map[string]struct{}
	Orphaned []string
	// Missing maps a locale file to the keys it lacks.
	Missing map[string][]string
}

// failed reports whether any locale lacks a key. Orphans only warn.
func (r report) failed() bool {
	return len(r.Missing) > 0
}

func main() {
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Printf("i18n-linter: %v\n", err)
		os.Exit(1)
	}
	writeReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	used, err := findUsedKeys(root)
	if err != nil {
		return report{}, fmt.Errorf("finding used keys: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(root, locales, primaryLocale))
	if err != nil {
		return report{}, fmt.Errorf("loading primary locale %s: %w", primaryLocale, err)
	}

	r := report{Used: used, Missing: map[string][]string{}}
	for key := range primary {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	// Keys used in code but absent from the primary locale.
	var undefined []string
	for key := range used {
		if _, ok := primary[key]; !ok {
			undefined = append(undefined, key)
		}
	}
	if len(undefined) > 0 {
		sort.Strings(undefined)
		r.Missing[primaryLocale] = undefined
	}

	files, err := filepath.Glob(filepath.Join(root, locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("loading %s: %w", name, err)
		}
		var missing []string
		for key := range primary {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			r.Missing[name] = missing
		}
	}
	return r, nil
}

func writeReport(w io.Writer, r report) {
	fmt.Fprintf(w, "Found %d unique translation keys in use.\n", len(r.Used))
	fmt.Fprintln(w, "--- Orphaned keys (in primary locale but not used) ---")
	if len(r.Orphaned) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, key := range r.Orphaned {
		fmt.Fprintf(w, "  - %s\n", key)
	}
	fmt.Fprintln(w, "--- Missing keys ---")
	if len(r.Missing) == 0 {
		fmt.Fprintln(w, "  none")
	}
	names := make([]string, 0, len(r.Missing))
	for name := range r.Missing {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, key := range r.Missing[name] {
			fmt.Fprintf(w, "  - %s: %s\n", name, key)
		}
	}
}

// findUsedKeys scans Go sources and HTML templates under root for keys.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}

		var res []*regexp.Regexp
		switch {
		case strings.HasSuffix(path, "_test.go"):
			return nil
		case strings.HasSuffix(path, ".go"):
			res = []*regexp.Regexp{goKeyRe, goLitRe}
		case strings.HasSuffix(path, ".html"):
			res = []*regexp.Regexp{tmplKeyRe}
		default:
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, re := range res {
			for _, m := range re.FindAllStringSubmatch(string(content), -1) {
				keys[m[1]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale returns the message ids in a flat or nested YAML file.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flatten("", raw, keys)
	return keys, nil
}

func flatten(prefix string, m map[string]any, out map[string]struct{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = struct{}{}
	}
}
