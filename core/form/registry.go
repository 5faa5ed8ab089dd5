package form

import (
	"io/fs"
	"path"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const schemasDir = "forms"

var ErrUnknownForm = errors.New("unknown form")

// Registry holds the schemas of the site, by name.
type Registry struct {
	schemas map[string]*Schema
}

// LoadSchemas parses every `forms/*.yaml` document of fsys.
// Schemas validate with v (the package default when nil).
func LoadSchemas(fsys fs.FS, v *Validator) (*Registry, error) {
	if v == nil {
		v = defaultValidator()
	}

	fps, err := fs.Glob(fsys, path.Join(schemasDir, "*.yaml"))
	if err != nil {
		return nil, errors.Wrap(err, "listing form schemas")
	}

	reg := &Registry{schemas: make(map[string]*Schema, len(fps))}
	for _, fp := range fps {
		data, err := fs.ReadFile(fsys, fp)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", fp)
		}
		schema, err := ParseSchema(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", fp)
		}
		if _, dup := reg.schemas[schema.Name]; dup {
			return nil, errors.Errorf("%s: duplicate form %q", fp, schema.Name)
		}
		schema.validator = v
		reg.schemas[schema.Name] = schema
	}
	return reg, nil
}

// ParseSchema decodes one YAML schema document.
func ParseSchema(data []byte) (*Schema, error) {
	schema := new(Schema)
	if err := yaml.Unmarshal(data, schema); err != nil {
		return nil, err
	}
	if schema.Name == "" {
		return nil, errors.New("schema has no name")
	}
	seen := make(map[string]bool, len(schema.Fields))
	for _, fd := range schema.Fields {
		if fd.Name == "" {
			return nil, errors.Errorf("form %q: field without name", schema.Name)
		}
		if seen[fd.Name] {
			return nil, errors.Errorf("form %q: duplicate field %q", schema.Name, fd.Name)
		}
		seen[fd.Name] = true
	}
	return schema, nil
}

func (r *Registry) Get(name string) (*Schema, error) {
	schema, ok := r.schemas[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownForm, "%q", name)
	}
	return schema, nil
}

// Names returns the form names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
