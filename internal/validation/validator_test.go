package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type evidenceInput struct {
	Content    string  `json:"content" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

func TestStructConfidenceBounds(t *testing.T) {
	tests := []struct {
		name    string
		input   evidenceInput
		wantErr bool
	}{
		{"valid", evidenceInput{Content: "sanctioned in 2023", Confidence: 0.8}, false},
		{"zero confidence", evidenceInput{Content: "weak rumor", Confidence: 0}, false},
		{"full confidence", evidenceInput{Content: "list match", Confidence: 1}, false},
		{"above one", evidenceInput{Content: "x", Confidence: 1.2}, true},
		{"negative", evidenceInput{Content: "x", Confidence: -0.1}, true},
		{"missing content", evidenceInput{Confidence: 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.NotEmpty(t, Message(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordPolicy(t *testing.T) {
	assert.NoError(t, Password("s3cure!pass"))
	assert.Error(t, Password("short!"))
	assert.Error(t, Password("nospecialchar1"))
}
