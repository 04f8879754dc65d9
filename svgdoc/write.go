package svgdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// countingWriter tracks the bytes written for io.WriterTo
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo writes the XML declaration, the SVG 1.1 doctype
// and the indented tree to `w`.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, xml.Header+Doctype+"\n"); err != nil {
		return cw.n, err
	}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "\t")
	if err := encodeElement(enc, d.root); err != nil {
		return cw.n, fmt.Errorf("svgdoc: encoding document: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}

func encodeElement(enc *xml.Encoder, e *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}, Attr: e.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := encodeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	var b bytes.Buffer
	_, err := d.WriteTo(&b)
	return b.Bytes(), err
}

// SaveFile writes the document to the named file.
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = d.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
