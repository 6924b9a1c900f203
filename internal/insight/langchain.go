package insight

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// #endregion

// #region langchain-types

// Backend names accepted by NewLangChainProvider.
const (
	BackendOllama    = "ollama"
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
)

// LangChainConfig selects a langchaingo backend.
type LangChainConfig struct {
	Backend   string
	Model     string
	APIKey    string
	ServerURL string // ollama only
}

// LangChainProvider generates insight through a langchaingo model.
// Grounding is not available on these backends and is ignored.
type LangChainProvider struct {
	llm       llms.Model
	modelName string
}

// Compile-time check that LangChainProvider implements Provider.
var _ Provider = (*LangChainProvider)(nil)

// #endregion

// #region langchain-constructor

// NewLangChainProvider creates a provider for the configured backend.
func NewLangChainProvider(cfg LangChainConfig) (*LangChainProvider, error) {
	var model llms.Model
	var err error

	switch cfg.Backend {
	case BackendOllama:
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.ServerURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
		}
		model, err = ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case BackendOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case BackendAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported langchain backend: %s", cfg.Backend)
	}

	return NewLangChainProviderFromModel(model, cfg.Model), nil
}

// NewLangChainProviderFromModel wraps an existing langchaingo model.
func NewLangChainProviderFromModel(model llms.Model, name string) *LangChainProvider {
	return &LangChainProvider{llm: model, modelName: name}
}

// Model returns the model name.
func (l *LangChainProvider) Model() string {
	return l.modelName
}

// #endregion

// #region langchain-generate

// Generate sends a system message, the chat history and prompt to the model.
// A schema is described in the system message and JSON mode is requested.
func (l *LangChainProvider) Generate(ctx context.Context, prompt string, opts Options) (Response, error) {
	system := opts.SystemInstruction
	if opts.Schema != nil {
		system = strings.TrimSpace(system + "\n\n" + describeSchema(opts.Schema))
	}

	messages := make([]llms.MessageContent, 0, len(opts.History)+2)
	if system != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	for _, m := range opts.History {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleModel {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Text))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	var callOpts []llms.CallOption
	if opts.Schema != nil {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := l.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return Response{}, fmt.Errorf("langchain generate: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("%w: no response choices", ErrMalformed)
	}

	out := Response{Text: resp.Choices[0].Content}
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
