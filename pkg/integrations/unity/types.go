package unity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultHandlerName is used for call handlers without a DisplayName field.
const DefaultHandlerName = "(no name)"

// OneOrMany decodes a collection field that the API renders as an array,
// a single bare object, or nothing at all. The result is always a slice.
type OneOrMany[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (m *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*m = items
		return nil
	}
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*m = OneOrMany[T]{item}
	return nil
}

// Text is a scalar field decoded best-effort into its string form.
// Strings are taken as-is, numbers and booleans keep their literal spelling,
// null becomes the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the text value.
func (t Text) String() string { return string(t) }

// ParseTotal converts the API's string-typed "@total" field to an integer.
// Anything unparseable yields 0.
func ParseTotal(s Text) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil {
		return 0
	}
	return n
}

// CallHandler is a call handler as listed by the callhandlers endpoint.
// Only the fields the export needs are decoded.
type CallHandler struct {
	ObjectID       Text  `json:"ObjectId"`
	DisplayName    *Text `json:"DisplayName"`
	MenuEntriesURI Text  `json:"MenuEntriesURI"`
}

// Name returns the handler's display name, or [DefaultHandlerName] when the
// field is absent.
func (h CallHandler) Name() string {
	if h.DisplayName == nil {
		return DefaultHandlerName
	}
	return h.DisplayName.String()
}

// CallHandlerList is the response of the callhandlers endpoint.
type CallHandlerList struct {
	Total        Text                   `json:"@total"`
	CallHandlers OneOrMany[CallHandler] `json:"Callhandler"`
}

// MenuEntry is one keypad mapping of a call handler.
type MenuEntry struct {
	ObjectID       Text `json:"ObjectId"`
	TouchtoneKey   Text `json:"TouchtoneKey"`
	Action         Text `json:"Action"`
	DisplayName    Text `json:"DisplayName"`
	TransferNumber Text `json:"TransferNumber"`
	TransferType   Text `json:"TransferType"`
	TransferRings  Text `json:"TransferRings"`
}

// ActionLabel returns the human-readable label of the entry's action code.
func (e MenuEntry) ActionLabel() string {
	return ActionLabel(e.Action.String())
}

// MenuEntryList is the response of a handler's menu entries endpoint.
type MenuEntryList struct {
	Total       Text                 `json:"@total"`
	MenuEntries OneOrMany[MenuEntry] `json:"MenuEntry"`
}

// actions maps menu entry action codes to their labels.
var actions = map[string]string{
	"0": "Ignore",
	"1": "Hang Up",
	"4": "Take Message",
	"5": "Skip Greeting",
	"6": "Restart Greeting",
	"7": "Transfer to alternate contact number",
	"8": "Route from next call routing rule",
}

// ActionLabel translates an action code. Codes outside the fixed table
// yield "Unknown (<code>)".
func ActionLabel(code string) string {
	if label, ok := actions[code]; ok {
		return label
	}
	return "Unknown (" + code + ")"
}
