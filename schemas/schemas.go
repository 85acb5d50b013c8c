// Package schemas embeds the JSON Schemas used to validate input documents.
package schemas

import _ "embed"

// SessionSchemaJSON is the JSON Schema for session_*.json files.
//
//go:embed session.schema.json
var SessionSchemaJSON string
