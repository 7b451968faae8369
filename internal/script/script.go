// Package script runs a pipeline of libvips operations described in YAML.
//
//	steps:
//	  - name: photo
//	    load: in.jpg
//	  - name: small
//	    op: resize
//	    input: $photo
//	    args: [0.5]
//	    named: {kernel: lanczos3}
//	  - op: invert
//	    name: negative
//	    args: [$small]
//	  - write: out.png[compression=9]
//	    input: $negative
//
// A "$name" argument refers to the first result of an earlier step and
// "$name.N" to its Nth result, counting from zero. "$$" escapes a leading
// dollar sign.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is a parsed pipeline
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one operation of a pipeline. Exactly one of Op, Load and Write
// is set.
type Step struct {
	Name string `yaml:"name,omitempty"`

	Op    string `yaml:"op,omitempty"`
	Load  string `yaml:"load,omitempty"`
	Write string `yaml:"write,omitempty"`

	// Input is prepended to Args for Op, and is the image saved by Write
	Input   string         `yaml:"input,omitempty"`
	Options string         `yaml:"options,omitempty"`
	Args    []any          `yaml:"args,omitempty"`
	Named   map[string]any `yaml:"named,omitempty"`
}

// Kind returns "op", "load" or "write"
func (s Step) Kind() string {
	switch {
	case s.Op != "":
		return "op"
	case s.Load != "":
		return "load"
	case s.Write != "":
		return "write"
	}
	return ""
}

// Parse decodes and validates a script
func Parse(input []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(input, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads and parses the script at path
func ParseFile(path string) (*Script, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the shape of every step. References are resolved when
// the script runs.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("steps must be non-empty")
	}

	seen := make(map[string]struct{}, len(s.Steps))
	for i, step := range s.Steps {
		set := 0
		for _, v := range []string{step.Op, step.Load, step.Write} {
			if strings.TrimSpace(v) != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("steps[%d] must set exactly one of op, load and write", i)
		}

		name := strings.TrimSpace(step.Name)
		if name == "" && step.Kind() != "write" {
			return fmt.Errorf("steps[%d].name is required", i)
		}
		if strings.ContainsAny(name, "$. ") {
			return fmt.Errorf("steps[%d].name %q may not contain '$', '.' or spaces", i, name)
		}
		if name != "" {
			if _, ok := seen[name]; ok {
				return fmt.Errorf("steps[%d].name must be unique (duplicate %q)", i, name)
			}
			seen[name] = struct{}{}
		}

		switch step.Kind() {
		case "write":
			if step.Input == "" {
				return fmt.Errorf("steps[%d].input is required for write", i)
			}
			if len(step.Args) > 0 {
				return fmt.Errorf("steps[%d].args not allowed for write", i)
			}
		case "load":
			if step.Input != "" || len(step.Args) > 0 {
				return fmt.Errorf("steps[%d] load takes no input or args", i)
			}
		}
		if step.Input != "" && !isReference(step.Input) {
			return fmt.Errorf("steps[%d].input must be a $reference, got %q", i, step.Input)
		}
	}
	return nil
}

func isReference(s string) bool {
	return strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "$$") && len(s) > 1
}
