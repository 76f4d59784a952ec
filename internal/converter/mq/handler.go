package mq

import (
	"context"

	"github.com/twbconv/twb2pbit/internal/converter"
	"github.com/twbconv/twb2pbit/internal/kafka"
)

type convertServe struct {
	svc       converter.Service
	transport *ConvertTransport
	publish   kafka.Publish
}

func (s *convertServe) handle(ctx context.Context, message []byte) {
	request, err := s.transport.DecodeRequest(message)

	var res converter.Response
	if err == nil {
		res, err = s.svc.Convert(ctx, request)
	}

	s.publish(s.transport.EncodeResponse(res, err))
}

// NewConvertHandler wires the conversion service to the queue.
func NewConvertHandler(
	svc converter.Service,
	transport *ConvertTransport,
	publish kafka.Publish,
) kafka.Handler {
	s := &convertServe{
		svc:       svc,
		transport: transport,
		publish:   publish,
	}

	return s.handle
}
