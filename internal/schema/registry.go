package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas
var schemaFS embed.FS

// Namespace is the apiVersion namespace this registry serves.
const Namespace = "ossa"

// ErrVersionNotFound is returned when a document declares an apiVersion that
// does not resolve to a registered core schema.
var ErrVersionNotFound = errors.New("no core schema registered for version")

var apiVersionPattern = regexp.MustCompile(`^` + Namespace + `/v(\d+\.\d+\.\d+)$`)

// Registry holds the compiled core schemas keyed by semantic version and the
// compiled extension schemas keyed by extension name. It is immutable after
// construction; concurrent lookups need no locking.
type Registry struct {
	core       map[string]*jsonschema.Schema
	versions   []*semver.Version
	extensions map[string]*jsonschema.Schema
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
	defaultErr      error
)

// Default returns the process-wide registry built from the embedded schema
// sources, compiling them on first use. A compilation failure here means the
// binary shipped with a broken schema and every call will return the same
// error.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(schemaFS, "schemas")
		if err != nil {
			defaultErr = fmt.Errorf("opening embedded schemas: %w", err)
			return
		}
		defaultRegistry, defaultErr = NewFromFS(sub)
	})
	return defaultRegistry, defaultErr
}

// NewFromFS builds a registry from a filesystem with core schemas under
// core/ossa-v<semver>.schema.json and extension schemas under
// extensions/<name>.schema.json.
func NewFromFS(fsys fs.FS) (*Registry, error) {
	r := &Registry{
		core:       make(map[string]*jsonschema.Schema),
		extensions: make(map[string]*jsonschema.Schema),
	}

	compiler := jsonschema.NewCompiler()

	coreEntries, err := fs.ReadDir(fsys, "core")
	if err != nil {
		return nil, fmt.Errorf("listing core schemas: %w", err)
	}
	for _, entry := range coreEntries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".schema.json") {
			continue
		}
		version := strings.TrimSuffix(strings.TrimPrefix(name, Namespace+"-v"), ".schema.json")
		v, err := semver.StrictNewVersion(version)
		if err != nil {
			return nil, fmt.Errorf("core schema %s: bad version in filename: %w", name, err)
		}
		compiled, err := compile(compiler, fsys, "core/"+name)
		if err != nil {
			return nil, err
		}
		r.core[v.String()] = compiled
		r.versions = append(r.versions, v)
	}
	if len(r.core) == 0 {
		return nil, errors.New("no core schemas found")
	}
	sort.Sort(semver.Collection(r.versions))

	extEntries, err := fs.ReadDir(fsys, "extensions")
	if err != nil {
		return nil, fmt.Errorf("listing extension schemas: %w", err)
	}
	for _, entry := range extEntries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".schema.json") {
			continue
		}
		key := strings.TrimSuffix(name, ".schema.json")
		compiled, err := compile(compiler, fsys, "extensions/"+name)
		if err != nil {
			return nil, err
		}
		r.extensions[key] = compiled
	}

	return r, nil
}

// compile parses and compiles one schema source file.
func compile(c *jsonschema.Compiler, fsys fs.FS, path string) (*jsonschema.Schema, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema %s: %w", path, err)
	}
	if err := c.AddResource(path, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource %s: %w", path, err)
	}
	compiled, err := c.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", path, err)
	}
	return compiled, nil
}

// CoreSchema returns the compiled core schema for an exact semantic version.
func (r *Registry) CoreSchema(version string) (*jsonschema.Schema, error) {
	s, ok := r.core[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVersionNotFound, version)
	}
	return s, nil
}

// ExtensionSchema returns the compiled schema registered under name. Absence
// is a first-class outcome, not an error: the extension namespace is
// open-world.
func (r *Registry) ExtensionSchema(name string) (*jsonschema.Schema, bool) {
	s, ok := r.extensions[name]
	return s, ok
}

// Versions returns the registered core schema versions in ascending
// semantic-version order.
func (r *Registry) Versions() []string {
	out := make([]string, len(r.versions))
	for i, v := range r.versions {
		out[i] = v.String()
	}
	return out
}

// LatestVersion returns the highest registered core schema version.
func (r *Registry) LatestVersion() string {
	return r.versions[len(r.versions)-1].String()
}

// Extensions returns the registered extension names in sorted order.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.extensions))
	for name := range r.extensions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ParseAPIVersion extracts the semantic version from an apiVersion value of
// the form "ossa/v<major>.<minor>.<patch>". It reports only whether the
// value is well-formed; whether the version is registered is the registry
// lookup's business.
func ParseAPIVersion(apiVersion string) (string, error) {
	m := apiVersionPattern.FindStringSubmatch(apiVersion)
	if m == nil {
		return "", fmt.Errorf("invalid apiVersion %q: expected %s/v<major>.<minor>.<patch>", apiVersion, Namespace)
	}
	return m[1], nil
}
