package script

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/cshum/vipscall/vips"
)

// Session holds the results of a run. Every image it holds belongs to the
// session and is released by Close.
type Session struct {
	results map[string][]any
	order   []string
}

// Result returns the results of the named step
func (s *Session) Result(name string) ([]any, bool) {
	r, ok := s.results[name]
	return r, ok
}

// Steps lists the names of the steps run, in order
func (s *Session) Steps() []string {
	return s.order
}

// Image returns the image a reference such as "$name" or "$name.1" points at
func (s *Session) Image(ref string) (*vips.Image, error) {
	v, err := s.resolveReference(ref)
	if err != nil {
		return nil, err
	}
	image, ok := v.(*vips.Image)
	if !ok {
		return nil, fmt.Errorf("%s is a %T, not an image", ref, v)
	}
	return image, nil
}

// Close releases every image produced by the run
func (s *Session) Close() {
	for _, name := range s.order {
		vips.CloseResults(s.results[name])
	}
	s.results = map[string][]any{}
	s.order = nil
}

// Runner runs scripts. Logf, when set, reports each step.
type Runner struct {
	Logf func(format string, args ...any)
}

// Run runs s with a default runner that logs through the standard logger
func Run(s *Script) (*Session, error) {
	return (&Runner{Logf: log.Printf}).Run(s)
}

// Run runs every step of s in order. On failure the partial session is
// closed and the error names the failing step.
func (r *Runner) Run(s *Script) (*Session, error) {
	session := &Session{results: make(map[string][]any, len(s.Steps))}

	for i, step := range s.Steps {
		results, err := session.runStep(step)
		if err != nil {
			session.Close()
			return nil, fmt.Errorf("steps[%d] %s: %w", i, describe(step), err)
		}
		if r.Logf != nil {
			r.Logf("step %d %s: %d results", i, describe(step), len(results))
		}
		if step.Name == "" {
			vips.CloseResults(results)
			continue
		}
		session.results[step.Name] = results
		session.order = append(session.order, step.Name)
	}

	return session, nil
}

func describe(step Step) string {
	var target string
	switch step.Kind() {
	case "op":
		target = step.Op
	case "load":
		target = step.Load
	case "write":
		target = step.Write
	}
	if step.Name != "" {
		return fmt.Sprintf("%s %s (%s)", step.Kind(), target, step.Name)
	}
	return fmt.Sprintf("%s %s", step.Kind(), target)
}

func (s *Session) runStep(step Step) ([]any, error) {
	named, err := s.resolveNamed(step.Named)
	if err != nil {
		return nil, err
	}

	switch step.Kind() {
	case "load":
		path := step.Load
		if step.Options != "" {
			path += step.Options
		}
		image, err := vips.NewImageFromFile(path, named)
		if err != nil {
			return nil, err
		}
		return []any{image}, nil

	case "write":
		image, err := s.Image(step.Input)
		if err != nil {
			return nil, err
		}
		path := step.Write
		if step.Options != "" {
			path += step.Options
		}
		return nil, image.WriteToFile(path, named)
	}

	args := make([]any, 0, len(step.Args)+2)
	if step.Input != "" {
		input, err := s.resolveReference(step.Input)
		if err != nil {
			return nil, err
		}
		args = append(args, input)
	}
	for _, arg := range step.Args {
		v, err := s.resolve(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if len(named) > 0 {
		args = append(args, named)
	}

	return vips.Call(step.Op, step.Options, args...)
}

func (s *Session) resolveNamed(named map[string]any) (vips.Options, error) {
	if len(named) == 0 {
		return nil, nil
	}
	options := make(vips.Options, len(named))
	for k, v := range named {
		resolved, err := s.resolve(v)
		if err != nil {
			return nil, fmt.Errorf("named %s: %w", k, err)
		}
		options[k] = resolved
	}
	return options, nil
}

// resolve replaces references inside a YAML value
func (s *Session) resolve(value any) (any, error) {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "$$") {
			return v[1:], nil
		}
		if isReference(v) {
			return s.resolveReference(v)
		}
		return v, nil
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			r, err := s.resolve(e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		return s.resolveNamed(v)
	}
	return value, nil
}

func (s *Session) resolveReference(ref string) (any, error) {
	if !isReference(ref) {
		return nil, fmt.Errorf("%q is not a reference", ref)
	}

	name, index := ref[1:], 0
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		n, err := strconv.Atoi(name[dot+1:])
		if err != nil {
			return nil, fmt.Errorf("bad result index in %q", ref)
		}
		name, index = name[:dot], n
	}

	results, ok := s.results[name]
	if !ok {
		return nil, fmt.Errorf("%s refers to an unknown or later step", ref)
	}
	if index < 0 || index >= len(results) {
		return nil, fmt.Errorf("%s: step %s has %d results", ref, name, len(results))
	}
	return results[index], nil
}
