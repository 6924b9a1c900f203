package codec

// #region imports
import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region service-names

// Service and method names of the remote inference service. Messages are
// google.protobuf.Struct so no generated stubs are needed on either side.
const (
	ServiceName    = "ada.InsightService"
	GenerateMethod = "/" + ServiceName + "/Generate"
)

// #endregion

// #region encode-request

// EncodeRequest packs a prompt and its options into a Struct.
func EncodeRequest(prompt string, opts insight.Options) (*structpb.Struct, error) {
	m := map[string]any{
		"prompt":             prompt,
		"system_instruction": opts.SystemInstruction,
		"grounding":          opts.Grounding,
	}
	if opts.Schema != nil {
		fields := make([]any, len(opts.Schema.Fields))
		for i, f := range opts.Schema.Fields {
			fields[i] = map[string]any{
				"name":        f.Name,
				"type":        string(f.Type),
				"description": f.Description,
			}
		}
		m["schema"] = fields
	}
	if len(opts.History) > 0 {
		history := make([]any, len(opts.History))
		for i, msg := range opts.History {
			history[i] = map[string]any{"role": string(msg.Role), "text": msg.Text}
		}
		m["history"] = history
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return s, nil
}

// DecodeRequest is the inverse of EncodeRequest.
func DecodeRequest(s *structpb.Struct) (string, insight.Options) {
	f := s.GetFields()
	opts := insight.Options{
		SystemInstruction: f["system_instruction"].GetStringValue(),
		Grounding:         f["grounding"].GetBoolValue(),
	}
	if list := f["schema"].GetListValue(); list != nil {
		schema := &insight.Schema{}
		for _, v := range list.GetValues() {
			ff := v.GetStructValue().GetFields()
			schema.Fields = append(schema.Fields, insight.Field{
				Name:        ff["name"].GetStringValue(),
				Type:        insight.FieldType(ff["type"].GetStringValue()),
				Description: ff["description"].GetStringValue(),
			})
		}
		opts.Schema = schema
	}
	for _, v := range f["history"].GetListValue().GetValues() {
		mf := v.GetStructValue().GetFields()
		opts.History = append(opts.History, insight.Message{
			Role: insight.Role(mf["role"].GetStringValue()),
			Text: mf["text"].GetStringValue(),
		})
	}
	return f["prompt"].GetStringValue(), opts
}

// #endregion

// #region encode-response

// EncodeResponse packs a provider response into a Struct.
func EncodeResponse(resp insight.Response) (*structpb.Struct, error) {
	m := map[string]any{"text": resp.Text}
	if len(resp.Structured) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(resp.Structured, &obj); err != nil {
			return nil, fmt.Errorf("%w: structured payload: %v", insight.ErrMalformed, err)
		}
		m["structured"] = obj
	}
	if len(resp.Sources) > 0 {
		sources := make([]any, len(resp.Sources))
		for i, src := range resp.Sources {
			sources[i] = map[string]any{"uri": src.URI, "title": src.Title}
		}
		m["sources"] = sources
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return s, nil
}

// DecodeResponse is the inverse of EncodeResponse.
func DecodeResponse(s *structpb.Struct) (insight.Response, error) {
	f := s.GetFields()
	resp := insight.Response{Text: f["text"].GetStringValue()}
	if obj := f["structured"].GetStructValue(); obj != nil {
		raw, err := json.Marshal(obj.AsMap())
		if err != nil {
			return insight.Response{}, fmt.Errorf("%w: structured payload: %v", insight.ErrMalformed, err)
		}
		resp.Structured = raw
	}
	for _, v := range f["sources"].GetListValue().GetValues() {
		sf := v.GetStructValue().GetFields()
		resp.Sources = append(resp.Sources, insight.Source{
			URI:   sf["uri"].GetStringValue(),
			Title: sf["title"].GetStringValue(),
		})
	}
	return resp, nil
}

// #endregion
