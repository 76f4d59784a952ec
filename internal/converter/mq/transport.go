package mq

import (
	"encoding/json"

	"github.com/twbconv/twb2pbit/internal/converter"
)

type builder func(payload interface{}, err error) ([]byte, error)

// ConvertTransport codes conversion jobs on the queue.
type ConvertTransport struct {
	builder builder
}

// NewConvertTransport ...
func NewConvertTransport(
	builder builder,
) *ConvertTransport {
	return &ConvertTransport{
		builder: builder,
	}
}

// DecodeRequest ...
func (t *ConvertTransport) DecodeRequest(message []byte) (converter.Request, error) {
	var req request
	err := json.Unmarshal(message, &req)
	return converter.Request(req), err
}

// EncodeResponse ...
func (t *ConvertTransport) EncodeResponse(res converter.Response, err error) (message []byte) {
	payload := response(res)
	message, _ = t.builder(payload, err)
	return
}
