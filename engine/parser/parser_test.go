package parser

import (
	"testing"

	"github.com/nathoo/dragonsrealm/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Basic verbs
		{
			name:  "look",
			input: "look",
			want:  types.Intent{Verb: "look"},
		},
		{
			name:  "inventory",
			input: "inventory",
			want:  types.Intent{Verb: "inventory"},
		},
		{
			name:  "i → inventory",
			input: "i",
			want:  types.Intent{Verb: "inventory"},
		},
		{
			name:  "status → stats",
			input: "status",
			want:  types.Intent{Verb: "stats"},
		},

		// Movement keys
		{
			name:  "w → go up",
			input: "w",
			want:  types.Intent{Verb: "go", Object: "up"},
		},
		{
			name:  "A → go left",
			input: "A",
			want:  types.Intent{Verb: "go", Object: "left"},
		},
		{
			name:  "right → go right",
			input: "right",
			want:  types.Intent{Verb: "go", Object: "right"},
		},
		{
			name:  "go south → go down",
			input: "go south",
			want:  types.Intent{Verb: "go", Object: "down"},
		},
		{
			name:  "move d → go right",
			input: "move d",
			want:  types.Intent{Verb: "go", Object: "right"},
		},
		{
			name:  "go with no direction",
			input: "go",
			want:  types.Intent{Verb: "go"},
		},

		// Items
		{
			name:  "use potion",
			input: "use Poção de Vida",
			want:  types.Intent{Verb: "use", Object: "poção de vida"},
		},
		{
			name:  "drink → use",
			input: "drink the potion",
			want:  types.Intent{Verb: "use", Object: "potion"},
		},
		{
			name:  "drop by id",
			input: "drop 3",
			want:  types.Intent{Verb: "drop", Object: "3"},
		},
		{
			name:  "pick up",
			input: "pick up tocha",
			want:  types.Intent{Verb: "take", Object: "tocha"},
		},
		{
			name:  "bare e → take nearby",
			input: "e",
			want:  types.Intent{Verb: "take"},
		},

		// Chat
		{
			name:  "say keeps case",
			input: "say Olá, Qenio!",
			want:  types.Intent{Verb: "say", Object: "Olá, Qenio!"},
		},
		{
			name:  "quote shorthand",
			input: "'Hello there",
			want:  types.Intent{Verb: "say", Object: "Hello there"},
		},
		{
			name:  "say with nothing",
			input: "say",
			want:  types.Intent{Verb: "say"},
		},

		// Unknown verbs pass through
		{
			name:  "unknown verb",
			input: "dance wildly",
			want:  types.Intent{Verb: "dance", Object: "wildly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
