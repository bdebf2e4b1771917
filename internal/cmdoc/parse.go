package cmdoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// ErrNoRootElement is wrapped by ParseError when the input holds no element at all.
var ErrNoRootElement = errors.New("no root element")

// ParseError reports input that could not be recovered into a tree.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	utf8BOM         = []byte("\xEF\xBB\xBF")
	declEncodingRE  = regexp.MustCompile(`^\s*<\?xml[^>]*encoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
	replacementRune = []byte("\uFFFD")
)

// ParseFile loads the document at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	doc, err := ParseBytes(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse loads a document from r. The whole input is read into memory.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read input: %w", err)}
	}
	return ParseBytes(data)
}

// ParseBytes loads a document from an in-memory buffer.
func ParseBytes(data []byte) (*Document, error) {
	sum := sha256.Sum256(data)
	doc := &Document{Digest: hex.EncodeToString(sum[:]), Size: len(data)}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !declaresForeignEncoding(data) && !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, replacementRune)
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	var stack []*Node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if doc.Root == nil {
				return nil, &ParseError{Err: err}
			}
			doc.Recovered = err
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:  Name{Space: repairSpace(t.Name.Space), Local: t.Name.Local},
				Attrs: convertAttrs(t.Attr),
			}
			switch {
			case len(stack) > 0:
				stack[len(stack)-1].appendChild(n)
			case doc.Root == nil:
				doc.Root = n
			}
			// A second top-level element is decoded but left detached.
			stack = append(stack, n)

		case xml.EndElement:
			stack = popTo(stack, t.Name.Local)

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if !top.sealed {
				top.Text += string(t)
			}

		case xml.Comment:
			if len(stack) > 0 {
				stack[len(stack)-1].sealed = true
			}
		}
	}

	if doc.Root == nil {
		return nil, &ParseError{Err: ErrNoRootElement}
	}
	return doc, nil
}

// popTo closes the innermost open element with the given local name together with
// everything opened inside it. End tags that match nothing open are dropped.
func popTo(stack []*Node, local string) []*Node {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Name.Local == local {
			return stack[:i]
		}
	}
	return stack
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{Name: Name{Space: a.Name.Space, Local: a.Name.Local}, Value: a.Value})
	}
	return out
}

// declaresForeignEncoding reports whether the XML declaration names an encoding
// other than UTF-8. Such input is transcoded by the charset reader instead.
func declaresForeignEncoding(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	m := declEncodingRE.FindSubmatch(head)
	if m == nil {
		return false
	}
	label := strings.ToLower(string(m[1]))
	return label != "utf-8" && label != "utf8"
}
