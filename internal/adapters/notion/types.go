package notion

import (
	"encoding/json"
	"fmt"

	"github.com/emiliopalmerini/runlog/internal/domain"
)

// CreatePageRequest is the body of POST /v1/pages.
type CreatePageRequest struct {
	Parent     Parent                    `json:"parent"`
	Properties map[string]PropertyObject `json:"properties"`
}

type Parent struct {
	DatabaseID string `json:"database_id"`
}

// PropertyObject is one property value. Only the field matching Type is
// encoded, under a key named after the type.
type PropertyObject struct {
	Type        string
	Date        *DateObject
	Status      *SelectOption
	Title       []RichText
	MultiSelect []SelectOption
	Number      float64
	RichText    []RichText
}

func (p PropertyObject) MarshalJSON() ([]byte, error) {
	var v any
	switch p.Type {
	case domain.TypeDate:
		v = p.Date
	case domain.TypeStatus:
		v = p.Status
	case domain.TypeTitle:
		v = p.Title
	case domain.TypeMultiSelect:
		v = p.MultiSelect
	case domain.TypeNumber:
		v = p.Number
	case domain.TypeRichText:
		v = p.RichText
	default:
		return nil, fmt.Errorf("unknown property type %q", p.Type)
	}
	return json.Marshal(map[string]any{p.Type: v})
}

type DateObject struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type RichText struct {
	Text TextContent `json:"text"`
}

type TextContent struct {
	Content string `json:"content"`
}

type pageResponse struct {
	Object string `json:"object"`
	ID     string `json:"id"`
	URL    string `json:"url"`
}

type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BuildRequest encodes props in Notion's property format.
func BuildRequest(databaseID string, props domain.Properties) (*CreatePageRequest, error) {
	req := &CreatePageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: make(map[string]PropertyObject, len(props)),
	}
	for _, p := range props {
		obj, err := encodeProperty(p.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		req.Properties[p.Name] = obj
	}
	return req, nil
}

func encodeProperty(v domain.PropertyValue) (PropertyObject, error) {
	if v == nil {
		return PropertyObject{}, fmt.Errorf("missing value")
	}
	obj := PropertyObject{Type: v.Type()}
	switch val := v.(type) {
	case domain.DateValue:
		obj.Date = &DateObject{Start: val.Start, End: val.End}
	case domain.StatusValue:
		obj.Status = &SelectOption{Name: val.Name}
	case domain.TitleValue:
		obj.Title = []RichText{{Text: TextContent{Content: val.Content}}}
	case domain.MultiSelectValue:
		// Non-nil so an empty tag set encodes as [] rather than null.
		obj.MultiSelect = make([]SelectOption, 0, len(val.Names))
		for _, n := range val.Names {
			obj.MultiSelect = append(obj.MultiSelect, SelectOption{Name: n})
		}
	case domain.NumberValue:
		obj.Number = val.Number
	case domain.RichTextValue:
		obj.RichText = []RichText{{Text: TextContent{Content: val.Content}}}
	default:
		return PropertyObject{}, fmt.Errorf("unsupported property type %T", v)
	}
	return obj, nil
}
