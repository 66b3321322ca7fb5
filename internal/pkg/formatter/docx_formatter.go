package formatter

import (
	"bytes"
	"strings"

	"github.com/futig/rag-assistant/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(answer entity.AnswerDocument) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(documentTitle)

	if answer.Question != "" {
		questionPar := doc.AddParagraph()
		label := questionPar.AddRun()
		label.Properties().SetBold(true)
		label.AddText(questionLabel + ": ")
		questionPar.AddRun().AddText(answer.Question)
	}

	doc.AddParagraph()

	// one paragraph per line keeps the answer's line breaks
	for _, line := range strings.Split(answer.Answer, "\n") {
		doc.AddParagraph().AddRun().AddText(line)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
