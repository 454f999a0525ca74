package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SchemaValidator checks JSON documents against schemas held in a filesystem
type SchemaValidator interface {
	ValidateBytes(data []byte, schemaPath string) error
}

// Issue is one leaf failure reported by the schema engine
type Issue struct {
	Path    string
	Keyword string
	Detail  string
}

func (i Issue) String() string {
	msg := "  - at " + i.Path + ": "
	if i.Keyword != "" {
		msg += i.Keyword + " "
	}
	msg += "validation failed"
	if i.Detail != "" {
		msg += " (" + i.Detail + ")"
	}
	return msg
}

// Report collects every issue found in a document
type Report struct {
	Schema string
	Issues []Issue
}

func (r *Report) Error() string {
	lines := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		lines[i] = issue.String()
	}
	return "schema validation failed:\n" + strings.Join(lines, "\n")
}

type validator struct {
	fsys    fs.FS
	printer *message.Printer

	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewFSSchemaValidator creates a validator that reads schemas from fsys,
// typically the embedded configs filesystem
func NewFSSchemaValidator(fsys fs.FS) SchemaValidator {
	return &validator{
		fsys:     fsys,
		printer:  message.NewPrinter(language.English),
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateBytes parses data and validates it against the schema at schemaPath.
// Schema violations are returned as a *Report.
func (v *validator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.schema(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaPath, err)
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("validation error: %w", err)
	}
	report := &Report{Schema: schemaPath}
	v.collect(verr, report)
	return report
}

func (v *validator) schema(path string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[path]; ok {
		return s, nil
	}

	raw, err := fs.ReadFile(v.fsys, path)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	if err := v.compiler.AddResource(path, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	s, err := v.compiler.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	v.schemas[path] = s
	return s, nil
}

// collect walks the cause tree; only leaves carry a concrete failure
func (v *validator) collect(err *jsonschema.ValidationError, r *Report) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			v.collect(cause, r)
		}
		return
	}

	issue := Issue{Path: "(root)"}
	if len(err.InstanceLocation) > 0 {
		issue.Path = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind != nil {
		issue.Keyword = strings.Join(err.ErrorKind.KeywordPath(), ".")
		issue.Detail = err.ErrorKind.LocalizedString(v.printer)
	}
	r.Issues = append(r.Issues, issue)
}
