package mq

type request struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Document []byte `json:"document"`
}

type response struct {
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Package []byte `json:"package,omitempty"`
}
