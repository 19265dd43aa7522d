package bot

import "strings"

type SegmentType string

const (
	SegmentTypeText  SegmentType = "text"
	SegmentTypeImage SegmentType = "image"
	SegmentTypeAt    SegmentType = "at"
)

type Segment struct {
	Type SegmentType    `json:"type"`
	Data map[string]any `json:"data"`
}

type Message []Segment

// SendResult is what a host reports back after delivering a message.
type SendResult struct {
	MessageID string
}

func Text(text string) Segment {
	return Segment{Type: SegmentTypeText, Data: map[string]any{"text": text}}
}

// ImageSegment wraps an image in the shape the active dialect expects.
func ImageSegment(img *Image) Segment {
	return Segment{Type: SegmentTypeImage, Data: map[string]any{"file": img.File()}}
}

// PlainText joins the text segments of msg.
func (msg Message) PlainText() string {
	var sb strings.Builder
	for _, seg := range msg {
		if seg.Type != SegmentTypeText {
			continue
		}
		if text, ok := seg.Data["text"].(string); ok {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

// Images returns the image segments of msg.
func (msg Message) Images() []Segment {
	var ret []Segment
	for _, seg := range msg {
		if seg.Type == SegmentTypeImage {
			ret = append(ret, seg)
		}
	}
	return ret
}
