package entity

// ResultFormat is the export format of an answer.
type ResultFormat string

const (
	FormatText     ResultFormat = ""
	FormatMarkdown ResultFormat = "md"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatText, FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// AnswerDocument is what gets exported when an answer is requested as a file.
type AnswerDocument struct {
	Question string
	Answer   string
}

type ImageInput struct {
	Filename    string
	ContentType string
	Data        []byte
	Instruction string
}

type AudioInput struct {
	Filename    string
	Data        []byte
	Language    string
	Temperature float32
}

type SpeechResult struct {
	Filename string
	Data     []byte
}

// Transcription languages accepted by the upload endpoint
const (
	LanguageEnglish   = "en"
	LanguageBulgarian = "bg"
)
