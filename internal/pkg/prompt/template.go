package prompt

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
)

var ErrMissingSlot = errors.New("prompt slot has no value")

var slotPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Template is a prompt text with named {slot} placeholders.
type Template struct {
	name  string
	text  string
	slots []string
}

// New parses text into a template. One trailing newline is dropped.
func New(name, text string) *Template {
	text = strings.TrimSuffix(text, "\n")

	seen := make(map[string]struct{})
	var slots []string
	for _, m := range slotPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		slots = append(slots, m[1])
	}

	return &Template{name: name, text: text, slots: slots}
}

// LoadFile reads a template from path. An empty path returns fallback.
func LoadFile(path string, fallback *Template) (*Template, error) {
	if path == "" {
		return fallback, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read prompt template %s: %w", entity.ErrConfiguration, path, err)
	}

	return New(path, string(data)), nil
}

func (t *Template) Name() string {
	return t.name
}

// Slots returns slot names in order of first appearance.
func (t *Template) Slots() []string {
	return append([]string(nil), t.slots...)
}

// Render substitutes every slot in a single pass, so braces inside values stay as they are.
func (t *Template) Render(values map[string]string) (string, error) {
	for _, slot := range t.slots {
		if _, ok := values[slot]; !ok {
			return "", fmt.Errorf("%w: %s in template %s", ErrMissingSlot, slot, t.name)
		}
	}

	return slotPattern.ReplaceAllStringFunc(t.text, func(match string) string {
		return values[match[1:len(match)-1]]
	}), nil
}
