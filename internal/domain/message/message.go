package message

import "time"

// Message is a named text that can be replayed.
type Message struct {
	// ID uniquely identifies the message.
	ID string `yaml:"id"`
	// Name is the short label shown in listings.
	Name string `yaml:"name"`
	// Text is what gets played.
	Text string `yaml:"text"`
	// Favorite marks the message as pinned.
	Favorite bool `yaml:"favorite"`
	// CreatedAt is when the message was added.
	CreatedAt time.Time `yaml:"created_at"`
}

// Clone returns a copy of the message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}

	cloned := *m

	return &cloned
}
