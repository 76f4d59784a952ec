package pbit

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

var utf16leBOM = []byte{0xff, 0xfe}
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// utf16Members must carry the UTF-16LE BOM and parse as JSON.
var utf16Members = []string{
	MemberDataModelSchema,
	MemberReportLayout,
	MemberSettings,
	MemberMetadata,
}

// Validator re-opens produced packages and reports structural and
// encoding defects. It never repairs.
type Validator struct{}

// NewValidator ...
func NewValidator() *Validator {
	return &Validator{}
}

// Validate confirms the required members exist and are non-empty, that
// each carries its mandated encoding, and that the JSON members hold
// the minimum key set the target application reads first.
func (v *Validator) Validate(pkg []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return fmt.Errorf("open package: %w", err)
	}

	members := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open member %s: %w", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("read member %s: %w", f.Name, err)
		}
		members[f.Name] = raw
	}

	for _, name := range memberOrder {
		raw, isPresent := members[name]
		if !isPresent {
			return &ValidationError{Member: name, Reason: "missing"}
		}
		if len(raw) == 0 {
			return &ValidationError{Member: name, Reason: "empty"}
		}
	}

	if err := v.validateVersion(members[MemberVersion]); err != nil {
		return err
	}

	parsed := make(map[string]map[string]interface{}, len(utf16Members))
	for _, name := range utf16Members {
		doc, err := v.parseUTF16Member(name, members[name])
		if err != nil {
			return err
		}
		parsed[name] = doc
	}

	if _, hasModel := parsed[MemberDataModelSchema]["model"]; !hasModel {
		return &ValidationError{Member: MemberDataModelSchema, Reason: "missing model section"}
	}
	return v.validatePages(parsed[MemberReportLayout])
}

// validateVersion requires plain non-blank UTF-8 with no BOM of any kind.
func (v *Validator) validateVersion(raw []byte) error {
	if bytes.HasPrefix(raw, utf16leBOM) || bytes.HasPrefix(raw, utf8BOM) {
		return &ValidationError{Member: MemberVersion, Reason: "unexpected byte order mark"}
	}
	if !utf8.Valid(raw) {
		return &ValidationError{Member: MemberVersion, Reason: "not valid UTF-8"}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &ValidationError{Member: MemberVersion, Reason: "blank version string"}
	}
	return nil
}

func (v *Validator) parseUTF16Member(name string, raw []byte) (map[string]interface{}, error) {
	if !bytes.HasPrefix(raw, utf16leBOM) {
		return nil, &ValidationError{Member: name, Reason: "missing UTF-16LE byte order mark"}
	}
	text, err := decodeMember(raw)
	if err != nil {
		return nil, &ValidationError{Member: name, Reason: "not valid UTF-16LE"}
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, &ValidationError{Member: name, Reason: "not valid JSON"}
	}
	return doc, nil
}

func (v *Validator) validatePages(doc map[string]interface{}) error {
	rawPages, hasPages := doc["pages"]
	if !hasPages {
		return &ValidationError{Member: MemberReportLayout, Reason: "missing pages section"}
	}
	pages, ok := rawPages.([]interface{})
	if !ok || len(pages) == 0 {
		return &ValidationError{Member: MemberReportLayout, Reason: "pages section is empty"}
	}
	for _, rawPage := range pages {
		page, ok := rawPage.(map[string]interface{})
		if !ok {
			return &ValidationError{Member: MemberReportLayout, Reason: "page is not an object"}
		}
		for _, key := range []string{"id", "width", "height"} {
			if _, hasKey := page[key]; !hasKey {
				return &ValidationError{Member: MemberReportLayout, Reason: "page missing " + key}
			}
		}
	}
	return nil
}
