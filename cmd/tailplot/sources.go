package main

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tailplot/tailplot/internal/model"

	"gopkg.in/yaml.v3"
)

// sourceFlags collects the repeatable per-kind path flags plus the shared
// CSV and poll options that apply to every source given on the command line.
type sourceFlags struct {
	JSONStream []string
	JSONPoll   []string
	CSVStream  []string
	CSVPoll    []string
	CSVHeader  string
	Delimiter  string
	PollPeriod time.Duration
}

// sourcesFromFlags expands the flag set into source configs, preserving the
// per-kind order the user gave.
func sourcesFromFlags(f sourceFlags) ([]model.SourceConfig, error) {
	delim, err := parseDelimiter(f.Delimiter)
	if err != nil {
		return nil, err
	}
	header := parseHeader(f.CSVHeader)

	var out []model.SourceConfig
	add := func(kind model.SourceKind, paths []string) {
		for _, path := range paths {
			cfg := model.SourceConfig{
				Kind:       kind,
				Path:       path,
				PollPeriod: f.PollPeriod,
			}
			if kind == model.CSVStream || kind == model.CSVPoll {
				cfg.Header = header
				cfg.Delimiter = delim
			}
			out = append(out, cfg)
		}
	}
	add(model.JSONStream, f.JSONStream)
	add(model.JSONPoll, f.JSONPoll)
	add(model.CSVStream, f.CSVStream)
	add(model.CSVPoll, f.CSVPoll)
	return out, nil
}

// sourcesFile is the YAML shape of a --sources file.
type sourcesFile struct {
	Sources []sourceSpec `yaml:"sources"`
}

type sourceSpec struct {
	Kind       string   `yaml:"kind"`
	Path       string   `yaml:"path"`
	Header     []string `yaml:"header"`
	Delimiter  string   `yaml:"delimiter"`
	PollPeriod string   `yaml:"poll-period"`
}

// loadSourcesFile reads a YAML sources file. Entries inherit defaultPoll
// unless they carry their own poll-period.
func loadSourcesFile(path string, defaultPoll time.Duration) ([]model.SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}

	out := make([]model.SourceConfig, 0, len(file.Sources))
	for i, spec := range file.Sources {
		kind, err := model.ParseSourceKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if spec.Path == "" {
			return nil, fmt.Errorf("sources[%d]: missing path", i)
		}

		delim, err := parseDelimiter(spec.Delimiter)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}

		pollPeriod := defaultPoll
		if spec.PollPeriod != "" {
			pollPeriod, err = time.ParseDuration(spec.PollPeriod)
			if err != nil {
				return nil, fmt.Errorf("sources[%d]: invalid poll-period: %w", i, err)
			}
		}

		out = append(out, model.SourceConfig{
			Kind:       kind,
			Path:       spec.Path,
			Header:     spec.Header,
			Delimiter:  delim,
			PollPeriod: pollPeriod,
		})
	}
	return out, nil
}

func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

func parseHeader(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
