//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package hwdesc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads an XML description document from the supplied reader.
// Character data, comments and processing instructions are not part
// of the format; non-whitespace character data is an error.
func Parse(r io.Reader) (*Document, error) {
	doc := New()
	dec := xml.NewDecoder(r)

	var cur *Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parsing description")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if cur == nil && doc.root != nil {
				return nil, errors.New("parsing description: multiple root elements")
			}
			node := doc.AddNode(cur, t.Name.Local)
			for _, a := range t.Attr {
				node.SetAttr(a.Name.Local, a.Value)
			}
			cur = node
		case xml.EndElement:
			if cur != nil {
				cur = cur.parent
			}
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, errors.Errorf("parsing description: unexpected character data %q",
					strings.TrimSpace(string(t)))
			}
		}
	}

	if doc.root == nil {
		return nil, errors.New("parsing description: empty document")
	}

	return doc, nil
}

// Write serializes the document as indented XML to the supplied writer.
func (d *Document) Write(w io.Writer) error {
	if d.Root() == nil {
		return errors.New("cannot serialize an empty document")
	}
	return writeNode(w, d.root, 0)
}

func writeNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s<%s", indent, n.name); err != nil {
		return err
	}
	for _, a := range n.attrs {
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", a.Name, escapeString(a.Value)); err != nil {
			return err
		}
	}

	if len(n.children) == 0 {
		_, err := io.WriteString(w, "/>\n")
		return err
	}

	if _, err := io.WriteString(w, ">\n"); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := writeNode(w, child, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.name)
	return err
}

func escapeString(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// LoadFile reads a description document from the file at path. A
// document whose root declares a format version newer than Version
// is rejected.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", path)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %q", path)
	}

	if verStr, found := doc.Root().Attr("version"); found {
		version, err := strconv.Atoi(verStr)
		if err != nil {
			return nil, errors.Wrapf(err, "%q: version attribute", path)
		}
		if version > Version {
			return nil, errors.Errorf("%q: unsupported description version %d (max supported %d)",
				path, version, Version)
		}
	}

	return doc, nil
}

// WriteFile serializes the document to the file at path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}

	if err := d.Write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %q", path)
	}

	return f.Close()
}
