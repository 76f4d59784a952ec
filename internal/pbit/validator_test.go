package pbit

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repack rewrites pkg, dropping the named member and substituting the
// given raw member contents.
func repack(t *testing.T, pkg []byte, drop string, replace map[string][]byte) []byte {
	t.Helper()

	names, members := unpack(t, pkg)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		if name == drop {
			continue
		}
		raw := members[name]
		if substitute, isReplaced := replace[name]; isReplaced {
			raw = substitute
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(raw)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	serializer := NewSerializer()
	validator := NewValidator()

	valid, err := serializer.Serialize(testModel(), testDocument(true))
	require.NoError(t, err)

	t.Run("produced package passes", func(t *testing.T) {
		assert.NoError(t, validator.Validate(valid))
	})

	t.Run("empty page package passes", func(t *testing.T) {
		pkg, err := serializer.Serialize(testModel(), testDocument(false))
		require.NoError(t, err)
		assert.NoError(t, validator.Validate(pkg))
	})

	t.Run("not a zip archive", func(t *testing.T) {
		assert.Error(t, validator.Validate([]byte("not an archive")))
	})

	t.Run("missing member", func(t *testing.T) {
		pkg := repack(t, valid, MemberMetadata, nil)

		err := validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberMetadata, verr.Member)
		assert.Equal(t, "missing", verr.Reason)
	})

	t.Run("empty member", func(t *testing.T) {
		pkg := repack(t, valid, "", map[string][]byte{MemberSettings: {}})

		err := validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberSettings, verr.Member)
		assert.Equal(t, "empty", verr.Reason)
	})

	t.Run("member without byte order mark", func(t *testing.T) {
		pkg := repack(t, valid, "", map[string][]byte{MemberSettings: []byte(`{"a":1}`)})

		err := validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberSettings, verr.Member)
		assert.Equal(t, "missing UTF-16LE byte order mark", verr.Reason)
	})

	t.Run("member with BOM but broken JSON", func(t *testing.T) {
		broken, err := utf16le.NewEncoder().Bytes([]byte(`{"a":`))
		require.NoError(t, err)
		pkg := repack(t, valid, "", map[string][]byte{MemberMetadata: broken})

		err = validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberMetadata, verr.Member)
		assert.Equal(t, "not valid JSON", verr.Reason)
	})

	t.Run("version with byte order mark", func(t *testing.T) {
		pkg := repack(t, valid, "", map[string][]byte{MemberVersion: {0xff, 0xfe, '4'}})

		err := validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberVersion, verr.Member)
		assert.Equal(t, "unexpected byte order mark", verr.Reason)
	})

	t.Run("blank version", func(t *testing.T) {
		pkg := repack(t, valid, "", map[string][]byte{MemberVersion: []byte("   ")})

		err := validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberVersion, verr.Member)
	})

	t.Run("schema without model section", func(t *testing.T) {
		hollow, err := encodeMember(map[string]string{"name": "SemanticModel"})
		require.NoError(t, err)
		pkg := repack(t, valid, "", map[string][]byte{MemberDataModelSchema: hollow})

		err = validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberDataModelSchema, verr.Member)
		assert.Equal(t, "missing model section", verr.Reason)
	})

	t.Run("layout without pages", func(t *testing.T) {
		hollow, err := encodeMember(map[string]string{"id": "r"})
		require.NoError(t, err)
		pkg := repack(t, valid, "", map[string][]byte{MemberReportLayout: hollow})

		err = validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberReportLayout, verr.Member)
		assert.Equal(t, "missing pages section", verr.Reason)
	})

	t.Run("page without geometry keys", func(t *testing.T) {
		hollow, err := encodeMember(map[string]interface{}{
			"id":    "r",
			"pages": []map[string]interface{}{{"id": "p", "width": 1280}},
		})
		require.NoError(t, err)
		pkg := repack(t, valid, "", map[string][]byte{MemberReportLayout: hollow})

		err = validator.Validate(pkg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MemberReportLayout, verr.Member)
		assert.Equal(t, "page missing height", verr.Reason)
	})
}
