package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrEmptyFrame = errors.New("empty frame")
	ErrNoType     = errors.New("envelope has no type")
)

// Encode wraps m in an envelope and serializes it in format f.
func Encode(m Message, f Format) ([]byte, error) {
	if m.Type == "" {
		return nil, ErrNoType
	}
	payload := m.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	env, err := structpb.NewStruct(map[string]any{
		"type":    m.Type,
		"payload": payload,
	})
	if err != nil {
		return nil, fmt.Errorf("build %s envelope: %w", m.Type, err)
	}

	if f == Text {
		return protojson.Marshal(env)
	}
	return proto.Marshal(env)
}

// Decode parses a frame produced by Encode or by a client speaking the same
// envelope.
func Decode(b []byte, f Format) (Message, error) {
	if len(b) == 0 {
		return Message{}, ErrEmptyFrame
	}

	env := &structpb.Struct{}
	var err error
	if f == Text {
		err = protojson.Unmarshal(b, env)
	} else {
		err = proto.Unmarshal(b, env)
	}
	if err != nil {
		return Message{}, fmt.Errorf("decode envelope: %w", err)
	}

	fields := env.GetFields()
	t := fields["type"].GetStringValue()
	if t == "" {
		return Message{}, ErrNoType
	}

	return Message{
		Type:    t,
		Payload: fields["payload"].GetStructValue().AsMap(),
	}, nil
}
