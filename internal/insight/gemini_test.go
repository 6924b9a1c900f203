package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, config
	return f.resp, f.err
}

func textResponse(text string, chunks ...*genai.GroundingChunk) *genai.GenerateContentResponse {
	cand := &genai.Candidate{Content: genai.NewContentFromText(text, genai.RoleModel)}
	if len(chunks) > 0 {
		cand.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: chunks}
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{cand}}
}

func TestGeminiGenerateGrounded(t *testing.T) {
	fm := &fakeModels{resp: textResponse("Newton formulated three laws.",
		&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{URI: "https://example.org/newton", Title: "Newton"}},
		&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{URI: " "}},
		&genai.GroundingChunk{},
	)}
	g := newGeminiProvider(fm, "")

	resp, err := g.Generate(context.Background(), "newton's law", Options{
		SystemInstruction: "be brief",
		Grounding:         true,
		History:           []Message{{Role: RoleUser, Text: "hi"}, {Role: RoleModel, Text: "hello"}},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultGeminiModel, fm.model)
	assert.Equal(t, "Newton formulated three laws.", resp.Text)
	assert.Equal(t, []Source{{URI: "https://example.org/newton", Title: "Newton"}}, resp.Sources)
	require.Len(t, fm.contents, 3)
	assert.Equal(t, string(genai.RoleModel), fm.contents[1].Role)
	require.Len(t, fm.config.Tools, 1)
	assert.NotNil(t, fm.config.Tools[0].GoogleSearch)
	assert.NotNil(t, fm.config.SystemInstruction)
	assert.Nil(t, fm.config.ResponseSchema)
}

func TestGeminiGenerateStructured(t *testing.T) {
	fm := &fakeModels{resp: textResponse(`{"entity":"Paris","correctness":0.9}`)}
	g := newGeminiProvider(fm, "gemini-test")

	resp, err := g.Generate(context.Background(), "q", Options{Schema: testSchema})
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", g.Model())
	assert.JSONEq(t, `{"entity":"Paris","correctness":0.9}`, string(resp.Structured))

	require.NotNil(t, fm.config.ResponseSchema)
	assert.Equal(t, "application/json", fm.config.ResponseMIMEType)
	assert.Equal(t, []string{"entity", "correctness"}, fm.config.ResponseSchema.Required)
	assert.Equal(t, genai.TypeNumber, fm.config.ResponseSchema.Properties["correctness"].Type)
	assert.Empty(t, fm.config.Tools)
}

func TestGeminiGenerateErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := newGeminiProvider(&fakeModels{err: boom}, "").Generate(context.Background(), "q", Options{})
	assert.ErrorIs(t, err, boom)

	_, err = newGeminiProvider(&fakeModels{}, "").Generate(context.Background(), "q", Options{})
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = newGeminiProvider(&fakeModels{resp: textResponse("not json")}, "").Generate(context.Background(), "q", Options{Schema: testSchema})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "", "")
	assert.Error(t, err)
}

func TestGeminiSchemaListField(t *testing.T) {
	s := geminiSchema(&Schema{Fields: []Field{{Name: "synonyms", Type: FieldStringList, Description: "words"}}})
	prop := s.Properties["synonyms"]
	require.NotNil(t, prop)
	assert.Equal(t, genai.TypeArray, prop.Type)
	require.NotNil(t, prop.Items)
	assert.Equal(t, genai.TypeString, prop.Items.Type)
	assert.Equal(t, "words", prop.Description)
}
