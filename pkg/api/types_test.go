package api

import (
	"reflect"
	"testing"
)

func TestTurnConstructors(t *testing.T) {
	tests := []struct {
		name string
		turn Turn
		want Turn
	}{
		{
			"user turn",
			UserTurn("hello"),
			Turn{Role: RoleUser, Content: []ContentPart{{Type: ContentTypeText, Text: "hello"}}},
		},
		{
			"assistant turn",
			AssistantTurn("hi there"),
			Turn{Role: RoleAssistant, Content: []ContentPart{{Type: ContentTypeText, Text: "hi there"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.turn, tt.want) {
				t.Errorf("got %+v, want %+v", tt.turn, tt.want)
			}
		})
	}
}

func TestPartConstructors(t *testing.T) {
	text := TextPart("spans")
	if text.Type != ContentTypeText || text.Text != "spans" {
		t.Errorf("TextPart = %+v", text)
	}
	if text.Cache {
		t.Error("TextPart should not set the cache marker")
	}

	img := ImagePart("image/png", "aGVsbG8=")
	if img.Type != ContentTypeImage || img.MediaType != "image/png" || img.Data != "aGVsbG8=" {
		t.Errorf("ImagePart = %+v", img)
	}
}
