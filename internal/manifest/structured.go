package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/routeshell/internal/route"
)

type document struct {
	Routes []route.Declaration `json:"routes" yaml:"routes"`
}

func decodeYAML(data []byte) ([]route.Declaration, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	for i := range doc.Routes {
		normalize(&doc.Routes[i])
	}
	return doc.Routes, nil
}

func decodeJSON(data []byte) ([]route.Declaration, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	for i := range doc.Routes {
		normalize(&doc.Routes[i])
	}
	return doc.Routes, nil
}

// normalize maps decoder-specific scalars onto the types HCL produces:
// whole numbers as int64, others as float64.
func normalize(d *route.Declaration) {
	for k, v := range d.Defaults {
		d.Defaults[k] = scalar(v)
	}
	if d.Handler != nil {
		if _, ok := d.Handler.(string); !ok {
			d.Handler = fmt.Sprint(d.Handler)
		}
	}
}

func scalar(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case float64:
		if n == float64(int64(n)) {
			return int64(n)
		}
		return n
	default:
		return v
	}
}
