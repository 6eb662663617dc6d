// Package loader turns raw text into a root value for the explorer,
// auto-detecting the input format. JSON, YAML (single and multi-document),
// NDJSON, TOML, and JWT tokens are recognized; anything else parses as a
// single YAML scalar or document.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a detected input format.
type Format int

const (
	FormatYAML Format = iota
	FormatMultiYAML
	FormatJSON
	FormatNDJSON
	FormatTOML
	FormatJWT
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatMultiYAML:
		return "multi-yaml"
	case FormatJSON:
		return "json"
	case FormatNDJSON:
		return "ndjson"
	case FormatTOML:
		return "toml"
	case FormatJWT:
		return "jwt"
	default:
		return "unknown"
	}
}

// Detect classifies trimmed input. The order matters: JWT is the most
// restrictive shape, then multi-document YAML, NDJSON, and TOML, with
// plain JSON and YAML as the fallbacks.
func Detect(input string) Format {
	if IsJWT(input) {
		return FormatJWT
	}
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatMultiYAML
	}
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}
	// TOML before JSON: a [section] header would otherwise read as a
	// JSON array prefix.
	if isLikelyTOML(input) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// Load parses input into a single root value. Multi-document inputs come
// back as a []any with one element per document.
func Load(input string) (any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	docs, err := loadDocs(input, Detect(input))
	if err != nil {
		return nil, err
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return docs, nil
}

// LoadBytes parses input bytes into a single root value.
func LoadBytes(data []byte) (any, error) {
	return Load(string(data))
}

// LoadFile reads a file and parses it into a single root value.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data)
}

func loadDocs(input string, f Format) ([]any, error) {
	switch f {
	case FormatJWT:
		decoded, err := DecodeJWT(input)
		if err != nil {
			return nil, err
		}
		return []any{decoded}, nil
	case FormatMultiYAML:
		return loadMultiDocYAML(input)
	case FormatNDJSON:
		return loadNDJSON(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatJSON:
		return loadJSON(input)
	default:
		return loadYAML(input)
	}
}

func loadJSON(input string) ([]any, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []any{data}, nil
}

func loadYAML(input string) ([]any, error) {
	var data any
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return []any{data}, nil
}

func loadMultiDocYAML(input string) ([]any, error) {
	var results []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return results, nil
}

// loadNDJSON parses newline-delimited JSON. Lines that fail to parse are
// kept as plain strings so a mixed log stream still loads.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			results = append(results, line)
			continue
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return results, nil
}

func loadTOML(input string) ([]any, error) {
	var data any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{data}, nil
}

// isLikelyNDJSON requires a majority of non-empty lines to start like a
// JSON object or array. Bare YAML list items then never qualify.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

var (
	// [section], [[array]], quoted and dotted variants. JSON arrays like
	// [1, 2, 3] never match.
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)

	// key = value with bare, quoted, or dotted keys. YAML's key: value
	// never matches.
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
