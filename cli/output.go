package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nbtkit/nbt"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// RenderTree writes a human-readable form of the tree to w in the given
// format.
func RenderTree(w io.Writer, tag *nbt.Tag, format string) error {
	switch format {
	case FormatText, "":
		return renderText(w, tag)
	case FormatTable:
		return renderTable(w, tag)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(TreeJSON(tag))
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, tag *nbt.Tag) error {
	return nbt.Walk(tag, func(path []string, t *nbt.Tag) error {
		indent := strings.Repeat("  ", len(path))
		label := ""
		if len(path) > 0 {
			label = path[len(path)-1]
		} else if key, _ := t.Key(); key != "" {
			label = key
		}
		_, err := fmt.Fprintf(w, "%s%s %s: %s\n", indent, t.Type(), strconv.Quote(label), FormatValue(t))
		return err
	})
}

func renderTable(w io.Writer, tag *nbt.Tag) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Path",
		"Type",
		"Value",
	})
	err := nbt.Walk(tag, func(path []string, t *nbt.Tag) error {
		table.Append([]string{
			"/" + strings.Join(path, "/"),
			t.Type().String(),
			FormatValue(t),
		})
		return nil
	})
	if err != nil {
		return err
	}
	table.Render()
	return nil
}

// FormatValue renders a tag's payload on a single line. Containers are
// summarized by their size.
func FormatValue(t *nbt.Tag) string {
	switch t.Type() {
	case nbt.TypeInt8:
		v, _ := t.Int8()
		return strconv.FormatInt(int64(v), 10)
	case nbt.TypeInt16:
		v, _ := t.Int16()
		return strconv.FormatInt(int64(v), 10)
	case nbt.TypeInt32:
		v, _ := t.Int32()
		return strconv.FormatInt(int64(v), 10)
	case nbt.TypeInt64:
		v, _ := t.Int64()
		return strconv.FormatInt(v, 10)
	case nbt.TypeFloat32:
		v, _ := t.Float32()
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case nbt.TypeFloat64:
		v, _ := t.Float64()
		return strconv.FormatFloat(v, 'g', -1, 64)
	case nbt.TypeString:
		v, _ := t.StringValue()
		return strconv.Quote(v)
	case nbt.TypeByteArray8:
		v, _ := t.ByteArray8()
		return fmt.Sprint(v)
	case nbt.TypeByteArray32:
		v, _ := t.ByteArray32()
		return fmt.Sprint(v)
	case nbt.TypeByteArray64:
		v, _ := t.ByteArray64()
		return fmt.Sprint(v)
	case nbt.TypeList:
		return fmt.Sprintf("%d entries of %s", t.Len(), t.ElementType())
	case nbt.TypeObject:
		return fmt.Sprintf("%d entries", t.Len())
	default:
		return ""
	}
}

// orderedObject marshals an object's members in their stored order.
type orderedObject struct {
	keys   []string
	values []interface{}
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TreeJSON converts a tree into values encoding/json can marshal. Objects
// keep their member order. Non-finite floats become strings since JSON has
// no representation for them.
func TreeJSON(t *nbt.Tag) interface{} {
	switch t.Type() {
	case nbt.TypeInt8:
		v, _ := t.Int8()
		return v
	case nbt.TypeInt16:
		v, _ := t.Int16()
		return v
	case nbt.TypeInt32:
		v, _ := t.Int32()
		return v
	case nbt.TypeInt64:
		v, _ := t.Int64()
		return v
	case nbt.TypeFloat32, nbt.TypeFloat64:
		s := FormatValue(t)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || strings.ContainsAny(s, "IN") {
			return s
		}
		return f
	case nbt.TypeString:
		v, _ := t.StringValue()
		return v
	case nbt.TypeByteArray8:
		v, _ := t.ByteArray8()
		return v
	case nbt.TypeByteArray32:
		v, _ := t.ByteArray32()
		return v
	case nbt.TypeByteArray64:
		v, _ := t.ByteArray64()
		return v
	case nbt.TypeList:
		out := make([]interface{}, 0, t.Len())
		for _, c := range t.Children() {
			out = append(out, TreeJSON(c))
		}
		return out
	case nbt.TypeObject:
		out := &orderedObject{}
		for _, c := range t.Children() {
			k, _ := c.Key()
			out.keys = append(out.keys, k)
			out.values = append(out.values, TreeJSON(c))
		}
		return out
	default:
		return nil
	}
}
