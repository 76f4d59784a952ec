package response

import (
	"encoding/json"
)

// Build wraps a conversion payload and error into the queue response
// envelope. On error the payload is replaced by the error text.
func Build(payload interface{}, err error) ([]byte, error) {
	response := response{
		IsOk: err == nil,
	}

	if payload != nil {
		response.Payload = payload
	}

	if !response.IsOk {
		response.Payload = err.Error()
	}
	return json.Marshal(response)
}
