package protocol

import (
	"encoding/json"
)

// envelope is the wire wrapper both directions: one message carries a batch
// of command documents.
type envelope struct {
	Commands []json.RawMessage `json:"commands"`
}

// RawCommand is one undecoded element of an inbound batch. The command name
// is extracted once; the payload is decoded by whichever handler claims it.
type RawCommand struct {
	Name string
	raw  json.RawMessage
}

// Decode unmarshals the raw payload into a typed document.
func (rc RawCommand) Decode(v any) error {
	if err := json.Unmarshal(rc.raw, v); err != nil {
		return NewCmdError(EJSONTYPE, "command object is not the desired type")
	}
	return nil
}

// DecodeEnvelope parses an inbound message into its batch of commands, in
// array order. Malformed JSON or a missing commands array fails the whole
// batch with a single CmdError; an element without a command field is
// returned with an empty Name for the dispatcher to reject individually.
func DecodeEnvelope(data []byte) ([]RawCommand, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, NewCmdError(EJSON, "malformed JSON: "+err.Error())
	}

	if env.Commands == nil {
		return nil, NewCmdError(EJSONVAL, "message does not contain a commands array")
	}

	batch := make([]RawCommand, 0, len(env.Commands))

	for _, raw := range env.Commands {
		var header struct {
			Command string `json:"command"`
		}
		// Ignore the per-element unmarshal error here: a non-object element
		// surfaces as an empty Name, same as a missing command field.
		_ = json.Unmarshal(raw, &header)

		batch = append(batch, RawCommand{Name: header.Command, raw: raw})
	}

	return batch, nil
}

// EncodeEnvelope wraps queued outbound documents, in order, into one wire
// message.
func EncodeEnvelope(docs []any) ([]byte, error) {
	env := struct {
		Commands []any `json:"commands"`
	}{Commands: docs}

	return json.Marshal(env)
}
