package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/judgeboard/judgeboard/schemas"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// sessionSchema is the compiled JSON Schema for session_*.json files.
var sessionSchema *jsonschema.Schema

func init() {
	sessionSchema = mustCompileSchema(schemas.SessionSchemaJSON, "session.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ParseJSON decodes a JSON document into generic values, keeping numbers as
// json.Number so no precision is lost before validation.
func ParseJSON(data []byte) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	return doc, nil
}

// ValidateSessionBytes validates raw session JSON against the session schema.
// It returns one message per problem, or nil when the document is valid.
func ValidateSessionBytes(data []byte) []string {
	doc, err := ParseJSON(data)
	if err != nil {
		return []string{err.Error()}
	}
	return ValidateSessionDocument(doc)
}

// ValidateSessionDocument validates an already decoded session document.
func ValidateSessionDocument(doc any) []string {
	return validateAgainstSchema(sessionSchema, doc)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
