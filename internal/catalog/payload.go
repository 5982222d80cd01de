package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"jobcatalog-engine/internal/domain"
)

const payloadSchemaURL = "payload.json"

// payloadSchema only checks structure: an array of objects with a string
// Title. Unknown fields are allowed.
func payloadSchema() map[string]any {
	optional := map[string]any{"type": []string{"string", "null"}}
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []string{"Title"},
			"properties": map[string]any{
				"Title":  map[string]any{"type": "string"},
				"Posted": optional,
				"Type":   optional,
				"Level":  optional,
				"Skill":  optional,
				"Detail": optional,
			},
		},
	}
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(payloadSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(payloadSchemaURL, bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(payloadSchemaURL)
	})
	return schema, schemaErr
}

// DecodePayload validates an uploaded JSON document and builds its jobs.
// Either every record becomes a Job or an error is returned.
func DecodePayload(data []byte) ([]domain.Job, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, invalid("load", "payload is not valid JSON", err)
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, invalid("load", "payload is not an array", nil)
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("payload schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, invalid("load", "payload does not match schema", err)
	}

	raws := make([]domain.RawJob, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, invalid("load", fmt.Sprintf("record %d is not an object", i), nil)
		}
		raws = append(raws, rawFromObject(obj))
	}
	return buildJobs(raws)
}

// rawFromObject reads the validated fields by their exact names, so the
// record holds the same values the schema checked. Case variants such as
// "title" are unknown fields and are ignored.
func rawFromObject(obj map[string]any) domain.RawJob {
	field := func(key string) string {
		s, _ := obj[key].(string)
		return s
	}
	raw := domain.RawJob{
		Posted: field("Posted"),
		Type:   field("Type"),
		Level:  field("Level"),
		Skill:  field("Skill"),
		Detail: field("Detail"),
	}
	if title, ok := obj["Title"].(string); ok {
		raw.Title = &title
	}
	return raw
}

func buildJobs(raws []domain.RawJob) ([]domain.Job, error) {
	jobs := make([]domain.Job, 0, len(raws))
	for i, raw := range raws {
		j, err := domain.FromRaw(raw)
		if err != nil {
			return nil, invalid("load", fmt.Sprintf("record %d", i), err)
		}
		j.Seq = i
		jobs = append(jobs, j)
	}
	return jobs, nil
}
