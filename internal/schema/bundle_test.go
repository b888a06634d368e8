package schema

import (
	"encoding/base64"
	"testing"

	"github.com/mcncl/jsonobj/internal/envelope"
	"github.com/mcncl/jsonobj/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackBundle_Layout(t *testing.T) {
	b := NewBundle("book-1", "hello")
	b.TableID = 3

	raw, err := base64.StdEncoding.DecodeString(PackBundle(b))
	require.NoError(t, err)
	assert.Equal(t,
		`{"ServerId":-1,"Revision":-1,"TableId":3,"UserId":-1,"Key":"book-1","Package":"aGVsbG8="}`,
		string(raw))
}

func TestBundleRoundTrip(t *testing.T) {
	b := Bundle{ServerID: 10, Revision: 2, TableID: 5, UserID: 99, Key: "k", Package: `{"title":"Dune"}`}

	got, err := UnpackBundle(PackBundle(b))
	require.NoError(t, err)
	assert.Equal(t, b, got)

	doc, err := parser.Parse(got.Package)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
}

func TestBundleRoundTrip_KeysReadAsScalars(t *testing.T) {
	tests := map[string]string{
		"007":    "7",
		"1.50":   "1.5",
		"-2":     "-2",
		"true":   "true",
		"null":   "",
		"book-7": "book-7",
		"7 days": "7 days",
	}

	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			got, err := UnpackBundle(PackBundle(NewBundle(key, "payload")))
			require.NoError(t, err)
			assert.Equal(t, want, got.Key)
			assert.Equal(t, "payload", got.Package, "package is base64 wrapped and survives as is")
		})
	}
}

func TestUnpackBundle_PlainJSON(t *testing.T) {
	got, err := UnpackBundle(`{"Key":"abc","Revision":"4"}`)
	require.NoError(t, err)

	assert.Equal(t, "abc", got.Key)
	assert.Equal(t, int64(4), got.Revision)
	assert.Equal(t, int64(Undefined), got.ServerID)
	assert.Equal(t, "", got.Package)
}

func TestUnpackBundle_Errors(t *testing.T) {
	_, err := UnpackBundle("")
	assert.Error(t, err)

	_, err = UnpackBundle(envelope.EncodeString(`{"Key":`))
	assert.Error(t, err)

	_, err = UnpackBundle(`[1,2]`)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry(book)
	require.NoError(t, err)

	assert.Equal(t, []string{"Book", "Bundle"}, reg.Names())

	rec, err := reg.Lookup("bundle")
	require.NoError(t, err)
	assert.Equal(t, "Bundle", rec.Name)

	_, err = reg.Lookup("Receipt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown record")

	_, err = NewRegistry(Record{Name: "Broken"})
	assert.Error(t, err)
}
