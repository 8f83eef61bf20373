package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields decoded pages: the frames of an image folder or the pages of
// a PDF document.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks the source implementation from the path: PDF files are
// rendered with MuPDF, everything else is decoded as an image or a folder of
// images.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}

// FitzPDFSource renders PDF pages through go-fitz.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) GetPageDimensions(index int) (float64, float64, error) {
	if err := checkIndex(index, f.PageCount()); err != nil {
		return 0, 0, err
	}
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	if err := checkIndex(index, f.PageCount()); err != nil {
		return nil, err
	}
	return f.doc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("page %d out of range [0, %d)", index, count)
	}
	return nil
}
