package compactbinary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump pretty-prints a Compact Binary payload holding one top-level struct.
// No schema is needed: fields are shown by id and wire type.
//
//	(struct) {
//	  <1> = (string) "circle"
//	  <4> = (list) [
//	    (struct) {
//	    ...
//
// On malformed input the text up to the failure is still written and the
// decoding error is returned.
func Dump(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	d := &dumper{w: bw, r: NewReader(data)}

	fmt.Fprint(bw, "(struct) {\n")
	err := d.structBody(0, false)
	if err == nil {
		fmt.Fprint(bw, "}\n")
		if n := d.r.Remaining(); n > 0 {
			err = fmt.Errorf("compactbinary: %d trailing bytes after struct", n)
		}
	} else {
		fmt.Fprint(bw, "\n")
	}

	if ferr := bw.Flush(); ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

type dumper struct {
	w *bufio.Writer
	r *Reader
}

func (d *dumper) pad(indent int) {
	d.w.WriteString(strings.Repeat("  ", indent))
}

func (d *dumper) structBody(indent int, isBase bool) error {
	for {
		typ, id, err := d.r.ReadFieldBegin()
		if err != nil {
			return err
		}
		if typ == TypeStop || typ == TypeStopBase {
			if isBase != (typ == TypeStopBase) {
				return StopTypeError("(struct)", isBase, typ)
			}
			return nil
		}

		d.pad(indent + 1)
		fmt.Fprintf(d.w, "<%d> = ", id)
		if err := d.value(indent+1, typ); err != nil {
			return err
		}
		d.w.WriteByte('\n')
	}
}

func (d *dumper) value(indent int, typ uint8) error {
	var (
		text string
		err  error
	)

	switch typ {
	case TypeBool:
		var v bool
		v, err = d.r.ReadBool()
		text = strconv.FormatBool(v)
	case TypeUInt8:
		var v uint8
		v, err = d.r.ReadUInt8()
		text = strconv.FormatUint(uint64(v), 10)
	case TypeUInt16:
		var v uint16
		v, err = d.r.ReadUInt16()
		text = strconv.FormatUint(uint64(v), 10)
	case TypeUInt32:
		var v uint32
		v, err = d.r.ReadUInt32()
		text = strconv.FormatUint(uint64(v), 10)
	case TypeUInt64:
		var v uint64
		v, err = d.r.ReadUInt64()
		text = strconv.FormatUint(v, 10)
	case TypeInt8:
		var v int8
		v, err = d.r.ReadInt8()
		text = strconv.FormatInt(int64(v), 10)
	case TypeInt16:
		var v int16
		v, err = d.r.ReadInt16()
		text = strconv.FormatInt(int64(v), 10)
	case TypeInt32:
		var v int32
		v, err = d.r.ReadInt32()
		text = strconv.FormatInt(int64(v), 10)
	case TypeInt64:
		var v int64
		v, err = d.r.ReadInt64()
		text = strconv.FormatInt(v, 10)
	case TypeFloat:
		var v float32
		v, err = d.r.ReadFloat()
		text = strconv.FormatFloat(float64(v), 'g', -1, 32)
	case TypeDouble:
		var v float64
		v, err = d.r.ReadDouble()
		text = strconv.FormatFloat(v, 'g', -1, 64)
	case TypeString:
		var v string
		v, err = d.r.ReadString()
		text = strconv.Quote(v)
	case TypeList, TypeSet:
		return d.list(indent, typ)
	case TypeMap:
		return d.dict(indent)
	case TypeStruct:
		d.w.WriteString("(struct) {\n")
		if err := d.structBody(indent, false); err != nil {
			return err
		}
		d.pad(indent)
		d.w.WriteByte('}')
		return nil
	default:
		fmt.Fprintf(d.w, "(%s)", TypeName(typ))
		return fmt.Errorf("compactbinary: cannot dump wire type %d", typ)
	}

	if err != nil {
		return err
	}
	fmt.Fprintf(d.w, "(%s) %s", TypeName(typ), text)
	return nil
}

func (d *dumper) list(indent int, typ uint8) error {
	size, elem, err := d.r.ReadContainerBegin()
	if err != nil {
		return err
	}
	open, closing := "[", "]"
	if typ == TypeSet {
		open, closing = "<", ">"
	}

	fmt.Fprintf(d.w, "(%s) %s\n", TypeName(typ), open)
	for range size {
		d.pad(indent + 1)
		if err := d.value(indent+1, elem); err != nil {
			return err
		}
		d.w.WriteByte('\n')
	}
	d.pad(indent)
	d.w.WriteString(closing)
	return d.r.ReadContainerEnd()
}

func (d *dumper) dict(indent int) error {
	size, key, value, err := d.r.ReadMapContainerBegin()
	if err != nil {
		return err
	}

	d.w.WriteString("(map) {\n")
	for range size {
		d.pad(indent + 1)
		if err := d.value(indent+1, key); err != nil {
			return err
		}
		d.w.WriteString(" = ")
		if err := d.value(indent+1, value); err != nil {
			return err
		}
		d.w.WriteByte('\n')
	}
	d.pad(indent)
	d.w.WriteByte('}')
	return d.r.ReadContainerEnd()
}
