package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName - content-subtype, под которым клиенты вызывают CalendarService
// (grpc.CallContentSubtype(CodecName)).
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec кодирует сообщения CalendarService как JSON: команды и ответы
// уже описаны JSON-конвертами {type, payload}.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
