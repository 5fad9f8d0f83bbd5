package translation

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Suffix is appended to an attribute name to form its backing column.
const Suffix = "_translations"

// Document maps locale codes to the translated value of one attribute.
type Document map[string]any

var (
	_ sql.Scanner   = (*Document)(nil)
	_ driver.Valuer = Document(nil)
)

// Decode interprets raw column storage as a Document. Missing or empty
// storage yields an empty, non-nil document. Numbers decode as json.Number
// so integers beyond float64 precision round-trip unchanged.
func Decode(raw any) (Document, error) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return Document{}, nil
	case Document:
		return v.clone(), nil
	case map[string]any:
		return Document(v).clone(), nil
	case *Document:
		if v == nil {
			return Document{}, nil
		}
		return v.clone(), nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	case *string:
		if v == nil {
			return Document{}, nil
		}
		data = []byte(*v)
	default:
		return decodeMap(raw)
	}

	if strings.TrimSpace(string(data)) == "" {
		return Document{}, nil
	}

	doc := Document{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after translation document")
	}
	if doc == nil {
		// a stored JSON null
		doc = Document{}
	}
	return doc, nil
}

// decodeMap accepts string-keyed maps of any value type, such as a bun
// map[string]string field.
func decodeMap(raw any) (Document, error) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Document{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedStorage, raw)
	}
	doc := make(Document, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		doc[iter.Key().String()] = iter.Value().Interface()
	}
	return doc, nil
}

// Encode renders the document as a JSON object.
func (d Document) Encode() (string, error) {
	if d == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]any(d))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Value implements driver.Valuer.
func (d Document) Value() (driver.Value, error) {
	return d.Encode()
}

// Scan implements sql.Scanner.
func (d *Document) Scan(src any) error {
	doc, err := Decode(src)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
