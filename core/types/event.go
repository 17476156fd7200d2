package types

// Event represents a typed event emitted during state transitions. Attribute
// values are strings so downstream indexers can persist records without
// schema knowledge.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}
