package formatter

import (
	"bytes"
	"os"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"
)

// Places where DejaVuSans.ttf may live: next to the binary in the container
// image, in the source tree, or in the system font directory.
var pdfFontPaths = []string{
	"ttf/DejaVuSans.ttf",
	"internal/pkg/formatter/ttf/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

type PDFFormatter struct {
	font []byte
}

func NewPDFFormatter() *PDFFormatter {
	return newPDFFormatter(pdfFontPaths...)
}

// newPDFFormatter reads the first readable font from paths. The bytes are
// handed to gofpdf directly because AddUTF8Font resolves names against its
// font directory and cannot take absolute paths.
func newPDFFormatter(paths ...string) *PDFFormatter {
	for _, p := range paths {
		if font, err := os.ReadFile(p); err == nil {
			return &PDFFormatter{font: font}
		}
	}
	return &PDFFormatter{}
}

func (pf *PDFFormatter) Format(doc entity.AnswerDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Cyrillic answers need the UTF-8 font, Arial only covers latin-1
	fontName := "Arial"
	if len(pf.font) > 0 {
		pdf.AddUTF8FontFromBytes(pdfFontName, "", pf.font)
		pdf.AddUTF8FontFromBytes(pdfFontName, "B", pf.font)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, documentTitle)
	pdf.Ln(12)

	if doc.Question != "" {
		pdf.SetFont(fontName, "B", 12)
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.5, questionLabel+": "+doc.Question, "", "", false)
		pdf.Ln(4)
	}

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, doc.Answer, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
