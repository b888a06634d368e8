package schema

import (
	"github.com/mcncl/jsonobj/internal/envelope"
	"github.com/mcncl/jsonobj/internal/errors"
)

// Undefined marks an id that has not been assigned
const Undefined = -1

// BundleRecord is the transport record exchanged with a store. Package
// carries the payload, itself base64 encoded inside the envelope.
var BundleRecord = Record{
	Name: "Bundle",
	Fields: []Field{
		{Name: "ServerId", Kind: KindInt, Default: Undefined},
		{Name: "Revision", Kind: KindInt, Default: Undefined},
		{Name: "TableId", Kind: KindInt, Default: Undefined},
		{Name: "UserId", Kind: KindInt, Default: Undefined},
		{Name: "Key", Kind: KindString},
		{Name: "Package", Kind: KindString},
	},
}

// Bundle is the decoded form of a BundleRecord envelope.
//
// Key travels as a plain JSON string, and quoted text that reads as a number
// or keyword is classified as such when the envelope is parsed. A Key such as
// "007" therefore comes back as "7", "1.50" as "1.5" and "null" as "". Keys
// that must survive verbatim should not look like numbers.
type Bundle struct {
	ServerID int64
	Revision int64
	TableID  int64
	UserID   int64
	Key      string
	Package  string
}

// NewBundle returns a bundle with every id undefined
func NewBundle(key, pkg string) Bundle {
	return Bundle{
		ServerID: Undefined,
		Revision: Undefined,
		TableID:  Undefined,
		UserID:   Undefined,
		Key:      key,
		Package:  pkg,
	}
}

// PackBundle encodes b as a base64 envelope
func PackBundle(b Bundle) string {
	obj := BundleRecord.Wrap(Values{
		"ServerId": b.ServerID,
		"Revision": b.Revision,
		"TableId":  b.TableID,
		"UserId":   b.UserID,
		"Key":      b.Key,
		"Package":  envelope.EncodeString(b.Package),
	})
	return envelope.ToBase64(obj)
}

// UnpackBundle decodes an envelope produced by PackBundle. Plain JSON text is
// accepted as well.
func UnpackBundle(s string) (Bundle, error) {
	doc, err := envelope.FromBase64(s)
	if err != nil {
		return Bundle{}, err
	}
	if doc == nil {
		return Bundle{}, errors.NewSchemaError("bundle is empty", errors.ErrEmptyInput)
	}

	vals, err := BundleRecord.UnwrapContainer(doc)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		ServerID: vals.Int("ServerId"),
		Revision: vals.Int("Revision"),
		TableID:  vals.Int("TableId"),
		UserID:   vals.Int("UserId"),
		Key:      vals.String("Key"),
		Package:  envelope.DecodeString(vals.String("Package")),
	}, nil
}
