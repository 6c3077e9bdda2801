package sigpad

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StrokePoint is a single captured sample.
// Time is in milliseconds since the Unix epoch.
type StrokePoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Time int64   `json:"time"`
}

// Point returns the sample position.
func (sp StrokePoint) Point() Point {
	return Point{X: sp.X, Y: sp.Y}
}

// velocityFrom returns the speed, in logical pixels per millisecond,
// from a previous sample to this one.
func (sp StrokePoint) velocityFrom(prev StrokePoint) float64 {
	dt := sp.Time - prev.Time
	if dt <= 0 {
		return 0
	}
	return sp.Point().Distance(prev.Point()) / float64(dt)
}

// Stroke is one pen-down-to-pen-up sequence of samples.
type Stroke struct {
	Color  string        `json:"color"`
	Points []StrokePoint `json:"points"`
}

// clone returns a deep copy of the stroke.
func (s Stroke) clone() Stroke {
	out := Stroke{Color: s.Color}
	out.Points = append(out.Points, s.Points...)
	return out
}

// EncodeData serializes strokes to JSON.
func EncodeData(strokes []Stroke) ([]byte, error) {
	return json.Marshal(strokes)
}

// DecodeData parses strokes from JSON produced by EncodeData.
func DecodeData(raw []byte) ([]Stroke, error) {
	var strokes []Stroke
	if err := json.Unmarshal(raw, &strokes); err != nil {
		return nil, fmt.Errorf("sigpad: decode stroke data: %w", err)
	}
	return strokes, nil
}

// ErrInvalidDataURL is returned when a data URL cannot be parsed.
var ErrInvalidDataURL = errors.New("sigpad: invalid data URL")

// encodeDataURL formats raw bytes as a base64 data URL.
func encodeDataURL(mimeType string, raw []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// decodeDataURL parses a base64 data URL into its MIME type and payload.
func decodeDataURL(s string) (mimeType string, raw []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	mimeType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: not base64 encoded", ErrInvalidDataURL)
	}
	raw, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return mimeType, raw, nil
}
