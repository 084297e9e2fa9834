package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var errNoDocumentXML = errors.New("word/document.xml not found")

// docxText returns the paragraphs of word/document.xml, one per line.
// Paragraphs nested in tables and text boxes are included in document order.
func docxText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", file.Name, err)
		}
		defer rc.Close()

		lines, err := wordParagraphs(rc)
		if err != nil {
			return "", fmt.Errorf("decoding %s: %w", file.Name, err)
		}
		return strings.TrimSpace(strings.Join(lines, "\n")), nil
	}

	return "", errNoDocumentXML
}

func wordParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		lines    []string
		para     strings.Builder
		depth    int
		inText   bool
		fallback int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// mc:Fallback repeats the text of its alternate content.
			if t.Name.Local == "Fallback" {
				fallback++
			}
			if fallback > 0 || !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "p":
				// A paragraph inside a text box belongs to the outer line.
				if depth == 0 {
					para.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br", "cr":
				para.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "Fallback" {
				fallback--
				continue
			}
			if fallback > 0 || !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if depth > 0 {
					depth--
				}
				if depth == 0 {
					lines = append(lines, para.String())
				}
			}
		case xml.CharData:
			if inText && fallback == 0 {
				para.Write(t)
			}
		}
	}
}

func isWord(name xml.Name) bool {
	return name.Space == wordNamespace || name.Space == ""
}
