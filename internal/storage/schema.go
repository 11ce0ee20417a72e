/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// sessionSchema validates the structure of session.json before any field
// is trusted. The state object stays loose on purpose: older builds must
// open documents written by newer ones, and the store sanitizes unknown
// IDs and out-of-range values on load anyway.
const sessionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "StoryCanvas session",
  "type": "object",
  "required": ["schemaVersion", "book", "state"],
  "properties": {
    "schemaVersion": { "type": "integer", "minimum": 1 },
    "book": {
      "type": "object",
      "required": ["title", "pages"],
      "properties": {
        "title": { "type": "string" },
        "pages": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["page", "text"],
            "properties": {
              "page": { "type": "integer", "minimum": 1 },
              "text": { "type": "string" },
              "imageUrl": { "type": "string" }
            }
          }
        }
      }
    },
    "state": {
      "type": "object",
      "required": ["overrides"],
      "properties": {
        "selectedTemplate": { "type": "string" },
        "pageSize": { "type": "string" },
        "overrides": { "type": "object" },
        "pageFrameSettings": { "type": "object" },
        "pageTextSettings": { "type": "object" },
        "pageCropSettings": { "type": "object" },
        "abPatternMode": { "type": "boolean" }
      }
    }
  }
}`

var compiledSessionSchema = gojsonschema.NewStringLoader(sessionSchema)

// ValidateSession checks data against the session schema and returns a
// descriptive error listing every violation.
func ValidateSession(data []byte) error {
	result, err := gojsonschema.Validate(compiledSessionSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var sb strings.Builder
	for i, e := range result.Errors() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.String())
	}
	return fmt.Errorf("session document invalid: %s", sb.String())
}
