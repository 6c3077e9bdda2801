package sigpad

import (
	"errors"
	"strings"
	"testing"
)

func TestVelocityFrom(t *testing.T) {
	tests := []struct {
		name       string
		prev, next StrokePoint
		want       float64
	}{
		{
			"straight line",
			StrokePoint{X: 0, Y: 0, Time: 0},
			StrokePoint{X: 30, Y: 0, Time: 10},
			3,
		},
		{
			"diagonal",
			StrokePoint{X: 0, Y: 0, Time: 0},
			StrokePoint{X: 3, Y: 4, Time: 5},
			1,
		},
		{
			"zero elapsed time",
			StrokePoint{X: 0, Y: 0, Time: 100},
			StrokePoint{X: 50, Y: 0, Time: 100},
			0,
		},
		{
			"clock went backwards",
			StrokePoint{X: 0, Y: 0, Time: 100},
			StrokePoint{X: 50, Y: 0, Time: 90},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.next.velocityFrom(tt.prev); got != tt.want {
				t.Errorf("velocityFrom() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrokeClone(t *testing.T) {
	orig := Stroke{
		Color:  "#336699",
		Points: []StrokePoint{{X: 1, Y: 2, Time: 3}, {X: 4, Y: 5, Time: 6}},
	}
	cp := orig.clone()
	cp.Points[0].X = 99

	if orig.Points[0].X != 1 {
		t.Error("mutating the clone changed the original stroke")
	}
}

func TestEncodeDataShape(t *testing.T) {
	raw, err := EncodeData([]Stroke{{
		Color:  "#000000",
		Points: []StrokePoint{{X: 1.5, Y: 2, Time: 1700000000000}},
	}})
	if err != nil {
		t.Fatalf("EncodeData() error = %v", err)
	}
	for _, field := range []string{`"color"`, `"points"`, `"x"`, `"y"`, `"time"`} {
		if !strings.Contains(string(raw), field) {
			t.Errorf("encoded data %s is missing field %s", raw, field)
		}
	}
}

func TestDecodeDataInvalid(t *testing.T) {
	if _, err := DecodeData([]byte("{not json")); err == nil {
		t.Error("DecodeData on malformed input: want error")
	}
}

func TestDataURLRoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	url := encodeDataURL("image/png", payload)

	mime, raw, err := decodeDataURL(url)
	if err != nil {
		t.Fatalf("decodeDataURL() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	if string(raw) != string(payload) {
		t.Errorf("payload = %v, want %v", raw, payload)
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing scheme", "image/png;base64,AA=="},
		{"missing payload separator", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,rawbytes"},
		{"corrupt base64", "data:image/png;base64,@@@@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := decodeDataURL(tt.url)
			if !errors.Is(err, ErrInvalidDataURL) {
				t.Errorf("decodeDataURL(%q) error = %v, want ErrInvalidDataURL", tt.url, err)
			}
		})
	}
}
