package todo

import (
	"strings"
	"testing"
)

func TestCreateParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr bool
	}{
		{
			name:    "valid without image",
			params:  CreateParams{Title: "Buy milk"},
			wantErr: false,
		},
		{
			name: "valid with image",
			params: CreateParams{
				Title:     "Buy milk",
				ImageURL:  "/uploads/1700000000000-abc123.png",
				ImageName: "receipt.png",
			},
			wantErr: false,
		},
		{
			name:    "missing title",
			params:  CreateParams{},
			wantErr: true,
		},
		{
			name:    "title too long",
			params:  CreateParams{Title: strings.Repeat("x", 256)},
			wantErr: true,
		},
		{
			name:    "image URL without name",
			params:  CreateParams{Title: "Buy milk", ImageURL: "/uploads/a.png"},
			wantErr: true,
		},
		{
			name:    "image name without URL",
			params:  CreateParams{Title: "Buy milk", ImageName: "a.png"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
