// Package schema holds JSON Schema documents written as Go maps and
// validates JSON against them. The question bank loader and the drafting
// client share it.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Document is a named JSON Schema.
type Document struct {
	// Name is kebab-case and unique per process. It doubles as the tool or
	// schema name sent to LLM providers.
	Name string

	// Description tells an LLM what the document represents.
	Description string

	// Definition is the schema itself.
	Definition map[string]any
}

// compiled caches compiled schemas by document name.
var compiled sync.Map

func (d *Document) resourceURL() string {
	return "schema://" + d.Name + ".json"
}

// Compile returns the compiled schema, compiling it on first use.
func (d *Document) Compile() (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(d.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// The compiler only accepts decoded JSON values, so Go ints and typed
	// slices in Definition have to go through the encoder first.
	raw, err := json.Marshal(d.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: encode: %w", d.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema %s: decode: %w", d.Name, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(d.resourceURL(), doc); err != nil {
		return nil, fmt.Errorf("schema %s: %w", d.Name, err)
	}
	s, err := c.Compile(d.resourceURL())
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", d.Name, err)
	}

	actual, _ := compiled.LoadOrStore(d.Name, s)
	return actual.(*jsonschema.Schema), nil
}

// Validate checks that raw is well-formed JSON matching the document.
func (d *Document) Validate(raw []byte) error {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	s, err := d.Compile()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%s: %w", d.Name, err)
	}
	return nil
}
