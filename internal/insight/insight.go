// Package insight is the boundary to the external generative model.
//
// Providers wrap a concrete backend (Gemini, langchaingo models, the gRPC
// inference service). Consult is the only entry point used by the core: it
// turns every failure mode into a failed Result instead of an error or panic.
package insight

// #region imports
import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// #endregion

// #region errors

var (
	// ErrNoProvider is reported when no provider is configured.
	ErrNoProvider = errors.New("insight: no provider configured")
	// ErrMalformed marks a response that arrived but cannot be used.
	ErrMalformed = errors.New("insight: malformed response")
)

// #endregion

// #region types

// FieldType is the JSON type of a schema field.
type FieldType string

const (
	FieldString     FieldType = "string"
	FieldNumber     FieldType = "number"
	FieldStringList FieldType = "string_list"
)

// Field is one required property of a structured response.
type Field struct {
	Name        string
	Type        FieldType
	Description string
}

// Schema describes the JSON object a provider must return. Every field is required.
type Schema struct {
	Fields []Field
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Role is the speaker of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one prior chat turn.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Options tune a single Generate call.
type Options struct {
	SystemInstruction string
	Grounding         bool    // allow the backend to search the web
	Schema            *Schema // non-nil requests a JSON object response
	History           []Message
}

// Source is a grounding reference returned by the backend.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Response is what a provider returns.
type Response struct {
	Text       string
	Structured json.RawMessage // set when Options.Schema was given
	Sources    []Source
}

// DecodeStructured unmarshals the structured payload into v.
func (r Response) DecodeStructured(v any) error {
	if len(r.Structured) == 0 {
		return fmt.Errorf("%w: no structured payload", ErrMalformed)
	}
	if err := json.Unmarshal(r.Structured, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Provider is an external generative-model backend.
type Provider interface {
	Generate(ctx context.Context, prompt string, opts Options) (Response, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, prompt string, opts Options) (Response, error)

// Generate calls f.
func (f ProviderFunc) Generate(ctx context.Context, prompt string, opts Options) (Response, error) {
	return f(ctx, prompt, opts)
}

// #endregion

// #region result

// Result is the outcome of Consult: either a usable Response or the error
// that prevented one.
type Result struct {
	Response Response
	Err      error
	Elapsed  time.Duration
}

// Failed reports whether the call produced no usable response.
func (r Result) Failed() bool {
	return r.Err != nil
}

// #endregion

// #region consult

// Consult calls p once and validates the response. Transport errors,
// panics inside the provider, empty responses and structured payloads that
// are not JSON objects carrying every schema field all yield a failed Result.
func Consult(ctx context.Context, p Provider, prompt string, opts Options, logger *slog.Logger) (res Result) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("insight: provider panic: %v", r)}
		}
		res.Elapsed = time.Since(start)
		if res.Err != nil {
			logger.Warn("insight call failed", "component", "insight", "error", res.Err, "elapsed_ms", res.Elapsed.Milliseconds())
		} else {
			logger.Debug("insight call completed", "component", "insight", "elapsed_ms", res.Elapsed.Milliseconds(), "sources", len(res.Response.Sources))
		}
	}()

	if p == nil {
		return Result{Err: ErrNoProvider}
	}

	resp, err := p.Generate(ctx, prompt, opts)
	if err != nil {
		return Result{Err: fmt.Errorf("generate: %w", err)}
	}
	if err := validate(resp, opts.Schema); err != nil {
		return Result{Err: err}
	}
	return Result{Response: resp}
}

func validate(resp Response, schema *Schema) error {
	if schema == nil {
		if strings.TrimSpace(resp.Text) == "" && len(resp.Structured) == 0 {
			return fmt.Errorf("%w: empty response", ErrMalformed)
		}
		return nil
	}

	raw := bytes.TrimSpace(resp.Structured)
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing structured payload", ErrMalformed)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for _, f := range schema.Fields {
		v, ok := obj[f.Name]
		if !ok || string(v) == "null" {
			return fmt.Errorf("%w: missing field %q", ErrMalformed, f.Name)
		}
	}
	return nil
}

// #endregion

// #region json-helpers

// ExtractJSON pulls the first JSON object out of model text, tolerating
// markdown code fences around it.
func ExtractJSON(text string) (json.RawMessage, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrMalformed)
	}
	raw := json.RawMessage(s[start : end+1])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON object", ErrMalformed)
	}
	return raw, nil
}

// describeSchema renders a schema as prompt text for backends without
// native schema support.
func describeSchema(s *Schema) string {
	var b strings.Builder
	b.WriteString("Respond with a single JSON object with exactly these fields:\n")
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "- %q (%s)", f.Name, f.Type)
		if f.Description != "" {
			fmt.Fprintf(&b, ": %s", f.Description)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// #endregion
