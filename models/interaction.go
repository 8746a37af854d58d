package models

import "fmt"

// InteractionKind classifies an inbound interaction after verification
type InteractionKind string

const (
	InteractionKindPing    InteractionKind = "ping"
	InteractionKindCommand InteractionKind = "command"
)

// CommandOption is a single name/value pair from a slash command invocation.
// Options are a flat list, not a mapping - duplicate names are possible and
// are resolved by first match.
type CommandOption struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// InteractionEnvelope is the normalized representation of one inbound
// interaction. It is built once by the verifier, serialized onto the command
// queue and deserialized once by the worker. Command envelopes always carry
// both Command and ChannelID; ping envelopes carry neither.
type InteractionEnvelope struct {
	Kind          InteractionKind `json:"-"`
	Command       string          `json:"command"`
	Options       []CommandOption `json:"options"`
	CommandIssuer string          `json:"command_issuer"`
	IssuerID      string          `json:"command_issuer_id,omitempty"`
	ChannelID     string          `json:"channel_id"`
}

// StringOption returns the value of the first option with the given name as
// a string. Returns an error if the option is missing or not a string.
func (e *InteractionEnvelope) StringOption(name string) (string, error) {
	for _, option := range e.Options {
		if option.Name != name {
			continue
		}
		value, ok := option.Value.(string)
		if !ok {
			return "", fmt.Errorf("option %q is not a string", name)
		}
		return value, nil
	}
	return "", fmt.Errorf("missing required option: %s", name)
}

// IntOption returns the value of the first option with the given name as an
// int64. JSON numbers decode as float64, so both forms are accepted.
func (e *InteractionEnvelope) IntOption(name string) (int64, error) {
	for _, option := range e.Options {
		if option.Name != name {
			continue
		}
		switch value := option.Value.(type) {
		case float64:
			return int64(value), nil
		case int64:
			return value, nil
		case int:
			return int64(value), nil
		default:
			return 0, fmt.Errorf("option %q is not a number", name)
		}
	}
	return 0, fmt.Errorf("missing required option: %s", name)
}
