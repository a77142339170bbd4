package notify

// Message is one outbound notification. Payload is serialized as-is into
// the relay request body.
type Message struct {
	To      string      `json:"to"`
	Subject string      `json:"subject"`
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload,omitempty"`
}

// Notifier defines the interface for dispatching outbound notifications.
// Dispatch is best-effort from the caller's point of view: a failed send
// must never undo the write that triggered it.
type Notifier interface {
	// Send dispatches a single message and returns an error if the relay
	// rejected or never received it
	Send(msg Message) error

	// GetName returns the name of the notifier implementation
	GetName() string
}
