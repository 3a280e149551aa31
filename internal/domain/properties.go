package domain

// Column types of the remote database.
const (
	TypeDate        = "date"
	TypeStatus      = "status"
	TypeTitle       = "title"
	TypeMultiSelect = "multi_select"
	TypeNumber      = "number"
	TypeRichText    = "rich_text"
)

// PropertyValue is a value tagged with the column type it is written to.
type PropertyValue interface {
	Type() string
}

type DateValue struct {
	Start string
	End   *string
}

type StatusValue struct {
	Name string
}

type TitleValue struct {
	Content string
}

type MultiSelectValue struct {
	Names []string
}

type NumberValue struct {
	Number float64
}

type RichTextValue struct {
	Content string
}

func (DateValue) Type() string        { return TypeDate }
func (StatusValue) Type() string      { return TypeStatus }
func (TitleValue) Type() string       { return TypeTitle }
func (MultiSelectValue) Type() string { return TypeMultiSelect }
func (NumberValue) Type() string      { return TypeNumber }
func (RichTextValue) Type() string    { return TypeRichText }

// Property is one named column of a row.
type Property struct {
	Name  string
	Value PropertyValue
}

// Properties is a row in column order.
type Properties []Property

// Get returns the value of the named column.
func (p Properties) Get(name string) (PropertyValue, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}
