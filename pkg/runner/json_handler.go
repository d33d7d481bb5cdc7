package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
//
// Every turn is written as one line: {"messages":[...],"continue":true,"phase":"collecting"}.
// Each input line may be a JSON string, an object {"message": "..."}, or plain text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, turn Turn) error {
	if turn.Messages == nil {
		turn.Messages = []string{}
	}
	return h.Encoder.Encode(turn)
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		return decodeInput(text), nil
	}
}

// Signal is a no-op: JSON consumers infer progress from the phase field.
func (h *JSONHandler) Signal(ctx context.Context, name string) error {
	return nil
}

func decodeInput(text string) string {
	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return s
	}
	var obj struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err == nil && obj.Message != nil {
		return *obj.Message
	}
	// Fallback: return raw text (e.g. if they just sent plain text)
	return text
}
