package types

// EventAttribute is a single key-value tag attached to an event.
type EventAttribute struct {
	Key   string `cramberry:"1"`
	Value string `cramberry:"2"`
}

// Event is emitted by the runtime for every successfully applied
// instruction (e.g. "create_record", "transfer_record").
type Event struct {
	Kind       string           `cramberry:"1"`
	Program    Pubkey           `cramberry:"2"`
	Attributes []EventAttribute `cramberry:"3"`
}

// Attr returns the value of the first attribute named key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
