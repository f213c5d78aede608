package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateFormat(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		accept    string
		want      string
	}{
		{
			name:      "auto with webp in accept header",
			requested: "auto",
			accept:    "text/html,image/webp,*/*",
			want:      "webp",
		},
		{
			name:      "auto without webp support",
			requested: "auto",
			accept:    "text/html",
			want:      "jpeg",
		},
		{
			name:      "auto with empty accept header",
			requested: "auto",
			accept:    "",
			want:      "jpeg",
		},
		{
			name:      "explicit png wins regardless of accept",
			requested: "png",
			accept:    "image/webp",
			want:      "png",
		},
		{
			name:      "explicit jpeg wins",
			requested: "jpeg",
			accept:    "image/webp",
			want:      "jpeg",
		},
		{
			name:      "empty request negotiates like auto",
			requested: "",
			accept:    "image/webp",
			want:      "webp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NegotiateFormat(tt.requested, tt.accept))
		})
	}
}
