package schedule

import "encoding/base64"

// PayloadKind discriminates the classified request shape.
type PayloadKind int

const (
	KindEmpty PayloadKind = iota
	KindText
	KindImage
)

// Payload is the classified inbound request body. Built once per request,
// never mutated.
type Payload struct {
	Kind  PayloadKind
	Text  string
	Image []byte
}

// Classify picks the request shape. Text wins over image when both are
// present, matching the transport's decode order.
func Classify(text string, image []byte) Payload {
	if text != "" {
		return Payload{Kind: KindText, Text: text}
	}
	if len(image) > 0 {
		return Payload{Kind: KindImage, Image: image}
	}
	return Payload{Kind: KindEmpty}
}

// InlineData carries base64-encoded binary content with its declared MIME
// type.
type InlineData struct {
	MimeType string
	Data     string
}

// Part is one element of the multimodal content handed to the extractor.
// Exactly one of Text or InlineData is set.
type Part struct {
	Text       string
	InlineData *InlineData
}

const imageInstruction = "Create a schedule entry from the contents of this image."

// All uploads are declared as JPEG. The extraction model tolerates a
// mismatched subtype and true sniffing is out of scope.
const imageMimeType = "image/jpeg"

// Parts normalizes the payload into ordered multimodal content. Empty
// payloads fail with ErrNoInput before any external call. No I/O here.
func (p Payload) Parts() ([]Part, error) {
	switch p.Kind {
	case KindText:
		return []Part{{Text: p.Text}}, nil
	case KindImage:
		return []Part{
			{Text: imageInstruction},
			{InlineData: &InlineData{
				MimeType: imageMimeType,
				Data:     base64.StdEncoding.EncodeToString(p.Image),
			}},
		}, nil
	default:
		return nil, ErrNoInput
	}
}
