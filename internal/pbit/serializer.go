package pbit

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/twbconv/twb2pbit/internal/layout"
	"github.com/twbconv/twb2pbit/internal/schema"
)

// Serializer renders models into template package bytes.
type Serializer struct{}

// NewSerializer ...
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize emits the five package members in their mandated encodings
// and deterministic order into a zip archive. The output depends only
// on the model and the layout document, so repeated conversions of the
// same input are byte-identical when identifier generation is held
// constant.
func (s *Serializer) Serialize(model schema.Model, doc layout.Document) ([]byte, error) {
	members, err := s.members(model, doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range memberOrder {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create member %s: %w", name, err)
		}
		if _, err = w.Write(members[name]); err != nil {
			return nil, fmt.Errorf("write member %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// members renders every member to its final bytes. All JSON members
// are UTF-16LE with BOM, only Version is plain UTF-8.
func (s *Serializer) members(model schema.Model, doc layout.Document) (map[string][]byte, error) {
	documents := map[string]interface{}{
		MemberDataModelSchema: newDataModelSchema(model),
		MemberReportLayout:    newReportLayout(doc),
		MemberSettings:        newSettings(),
		MemberMetadata:        newMetadata(),
	}

	members := make(map[string][]byte, len(memberOrder))
	members[MemberVersion] = []byte(versionLiteral)
	for name, document := range documents {
		raw, err := encodeMember(document)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", name, err)
		}
		members[name] = raw
	}
	return members, nil
}
