// Package schemafile loads string-typed graph schemas from CUE files.
//
// A schema file is a single CUE document matching the #Schema definition
// below. Every type name is NFC-normalized on load so schemas authored
// with different Unicode compositions compare equal.
package schemafile

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/unicode/norm"

	"github.com/build-aau/typed-graph/generic"
)

// Definition is the CUE shape every schema file must satisfy.
const Definition = `
#Endpoint: {
	edge:   string
	source: string
	target: string
}

#Schema: {
	name?:               string
	node_whitelist?:     [...string]
	node_blacklist?:     [...string]
	edge_whitelist?:     [...string]
	edge_blacklist?:     [...string]
	endpoint_whitelist?: [...#Endpoint]
	endpoint_blacklist?: [...#Endpoint]
	quantity_limits?: [...{#Endpoint, max: int & >=0}]
}
`

// Error code constants for schema file loading.
const (
	ErrCodeNotFound      = "S001" // File not found or unreadable
	ErrCodeCompileFailed = "S002" // CUE compile error
	ErrCodeInvalid       = "S003" // Document does not satisfy #Schema
	ErrCodeDecodeFailed  = "S004" // Decode into the schema struct failed
)

// LoadError reports a schema file failure with its CUE position when one
// is available.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads, validates and decodes a schema file.
func Load(path string) (generic.StringSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return generic.StringSchema{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading schema file: %v", err)}
	}
	return Parse(path, data)
}

// Parse validates and decodes schema file contents. path is used for
// positions in error messages only.
func Parse(path string, data []byte) (generic.StringSchema, error) {
	ctx := cuecontext.New()

	def := ctx.CompileString(Definition)
	if err := def.Err(); err != nil {
		return generic.StringSchema{}, &LoadError{Code: ErrCodeCompileFailed, Message: fmt.Sprintf("compiling schema definition: %v", err)}
	}

	doc := ctx.CompileBytes(data, cue.Filename(path))
	if err := doc.Err(); err != nil {
		return generic.StringSchema{}, &LoadError{Code: ErrCodeCompileFailed, Message: fmt.Sprintf("compiling schema file: %v", err), Pos: doc.Pos()}
	}

	unified := doc.Unify(def.LookupPath(cue.ParsePath("#Schema")))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return generic.StringSchema{}, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("schema file does not match #Schema: %v", err), Pos: unified.Pos()}
	}

	var schema generic.StringSchema
	if err := unified.Decode(&schema); err != nil {
		return generic.StringSchema{}, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding schema: %v", err)}
	}

	normalize(&schema)
	return schema, nil
}

// normalize NFC-normalizes every type name in place.
func normalize(s *generic.StringSchema) {
	s.SchemaName = norm.NFC.String(s.SchemaName)
	normalizeList(s.NodeWhitelist)
	normalizeList(s.NodeBlacklist)
	normalizeList(s.EdgeWhitelist)
	normalizeList(s.EdgeBlacklist)
	for i := range s.EndpointWhitelist {
		normalizeEndpoint(&s.EndpointWhitelist[i])
	}
	for i := range s.EndpointBlacklist {
		normalizeEndpoint(&s.EndpointBlacklist[i])
	}
	for i := range s.QuantityLimits {
		normalizeEndpoint(&s.QuantityLimits[i].Endpoint)
	}
}

func normalizeList(list []string) {
	for i, v := range list {
		list[i] = norm.NFC.String(v)
	}
}

func normalizeEndpoint(e *generic.Endpoint[string, string]) {
	e.Edge = norm.NFC.String(e.Edge)
	e.Source = norm.NFC.String(e.Source)
	e.Target = norm.NFC.String(e.Target)
}
