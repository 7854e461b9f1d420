package common

import "testing"

func TestRequiredString(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		key     string
		want    string
		wantErr bool
	}{
		{
			name: "present",
			args: map[string]interface{}{"title": "Groceries"},
			key:  "title",
			want: "Groceries",
		},
		{
			name:    "absent",
			args:    map[string]interface{}{},
			key:     "title",
			wantErr: true,
		},
		{
			name:    "empty",
			args:    map[string]interface{}{"title": ""},
			key:     "title",
			wantErr: true,
		},
		{
			name:    "wrong type",
			args:    map[string]interface{}{"title": 42.0},
			key:     "title",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequiredString(tt.args, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequiredString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RequiredString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionalString(t *testing.T) {
	args := map[string]interface{}{"category": "work", "count": 2.0}

	if got := OptionalString(args, "category"); got != "work" {
		t.Errorf("OptionalString(category) = %q, want %q", got, "work")
	}
	if got := OptionalString(args, "missing"); got != "" {
		t.Errorf("OptionalString(missing) = %q, want empty", got)
	}
	if got := OptionalString(args, "count"); got != "" {
		t.Errorf("OptionalString(count) = %q, want empty for non-string", got)
	}
}

func TestRequiredInt(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		key     string
		want    int
		wantErr bool
	}{
		{
			name: "json number",
			args: map[string]interface{}{"board_id": 7.0},
			key:  "board_id",
			want: 7,
		},
		{
			name: "native int",
			args: map[string]interface{}{"board_id": 3},
			key:  "board_id",
			want: 3,
		},
		{
			name:    "fractional",
			args:    map[string]interface{}{"board_id": 7.5},
			key:     "board_id",
			wantErr: true,
		},
		{
			name:    "absent",
			args:    map[string]interface{}{},
			key:     "board_id",
			wantErr: true,
		},
		{
			name:    "string",
			args:    map[string]interface{}{"board_id": "7"},
			key:     "board_id",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequiredInt(tt.args, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequiredInt() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RequiredInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOptionalInt(t *testing.T) {
	args := map[string]interface{}{"limit": 25.0}

	if got := OptionalInt(args, "limit", 10); got != 25 {
		t.Errorf("OptionalInt(limit) = %d, want 25", got)
	}
	if got := OptionalInt(args, "missing", 10); got != 10 {
		t.Errorf("OptionalInt(missing) = %d, want fallback 10", got)
	}
}

func TestOptionalBool(t *testing.T) {
	args := map[string]interface{}{"favorite": true}

	if got := OptionalBool(args, "favorite", false); !got {
		t.Error("OptionalBool(favorite) = false, want true")
	}
	if got := OptionalBool(args, "missing", true); !got {
		t.Error("OptionalBool(missing) = false, want fallback true")
	}
}
