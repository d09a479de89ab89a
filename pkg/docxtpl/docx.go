package docxtpl

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

// ContentType is the MIME type of a rendered word-processing document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// docxReader handles reading and indexing the parts of a DOCX package
type docxReader struct {
	reader *zip.Reader
	parts  map[string]*zip.File
}

// newDocxReader opens a DOCX package from an in-memory byte slice
func newDocxReader(source []byte) (*docxReader, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(source), int64(len(source)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &docxReader{
		reader: zipReader,
		parts:  make(map[string]*zip.File),
	}
	for _, file := range zipReader.File {
		dr.parts[file.Name] = file
	}

	// A package without a main document part is not a DOCX file
	if _, ok := dr.parts["word/document.xml"]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing word/document.xml")
	}

	return dr, nil
}

// getPart retrieves the content of a specific package part
func (dr *docxReader) getPart(name string) ([]byte, error) {
	file, ok := dr.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}

	return content, nil
}

// documentXML retrieves the content of word/document.xml
func (dr *docxReader) documentXML() ([]byte, error) {
	return dr.getPart("word/document.xml")
}

// repackage writes a new DOCX package, copying every part of the source
// package verbatim except word/document.xml, which is replaced with the
// given bytes.
func (dr *docxReader) repackage(documentXML []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, file := range dr.reader.File {
		fw, err := w.Create(file.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", file.Name, err)
		}

		if file.Name == "word/document.xml" {
			if _, err := fw.Write(documentXML); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", file.Name, err)
			}
			continue
		}

		fr, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
		}
		_, err = io.Copy(fw, fr)
		fr.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}

	return buf.Bytes(), nil
}

// readFile loads an entire template file into memory
func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}
	return content, nil
}
