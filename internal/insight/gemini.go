package insight

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// #endregion

// #region gemini-types

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the subset of *genai.Models the provider uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider generates insight with the Gemini API.
type GeminiProvider struct {
	models contentGenerator
	model  string
}

// Compile-time check that GeminiProvider implements Provider.
var _ Provider = (*GeminiProvider)(nil)

// #endregion

// #region gemini-constructor

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGeminiProvider(client.Models, model), nil
}

func newGeminiProvider(models contentGenerator, model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{models: models, model: model}
}

// Model returns the configured model name.
func (g *GeminiProvider) Model() string {
	return g.model
}

// #endregion

// #region gemini-generate

// Generate sends prompt, with any chat history before it, to Gemini.
func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts Options) (Response, error) {
	contents := make([]*genai.Content, 0, len(opts.History)+1)
	for _, m := range opts.History {
		if m.Role == RoleModel {
			contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleModel))
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleUser))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{}
	if opts.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemInstruction, genai.RoleUser)
	}
	if opts.Grounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if opts.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiSchema(opts.Schema)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return Response{}, fmt.Errorf("%w: nil gemini response", ErrMalformed)
	}

	out := Response{
		Text:    resp.Text(),
		Sources: geminiSources(resp),
	}
	if opts.Schema != nil {
		raw, err := ExtractJSON(out.Text)
		if err != nil {
			return Response{}, err
		}
		out.Structured = raw
	}
	return out, nil
}

// #endregion

// #region gemini-helpers

func geminiSchema(s *Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	for _, f := range s.Fields {
		var fs *genai.Schema
		switch f.Type {
		case FieldNumber:
			fs = &genai.Schema{Type: genai.TypeNumber}
		case FieldStringList:
			fs = &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
		default:
			fs = &genai.Schema{Type: genai.TypeString}
		}
		fs.Description = f.Description
		props[f.Name] = fs
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         s.Names(),
		PropertyOrdering: s.Names(),
	}
}

func geminiSources(resp *genai.GenerateContentResponse) []Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || strings.TrimSpace(chunk.Web.URI) == "" {
			continue
		}
		sources = append(sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}

// #endregion
