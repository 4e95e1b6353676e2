package entities

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		want   IntentCategory
		wantOK bool
	}{
		{name: "exact match", label: "news", want: CategoryNews, wantOK: true},
		{name: "whitespace and case", label: "  General \n", want: CategoryGeneral, wantOK: true},
		{name: "unknown label", label: "spotify", wantOK: false},
		{name: "empty", label: "", wantOK: false},
		{name: "model ramble", label: "the category is notepad", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.label)
			if ok != tt.wantOK {
				t.Fatalf("ParseCategory(%q) ok = %v, want %v", tt.label, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestCategoriesClosedSet(t *testing.T) {
	seen := make(map[IntentCategory]bool)
	for _, c := range Categories() {
		if seen[c] {
			t.Errorf("Duplicate category %s", c)
		}
		seen[c] = true
	}
	if !seen[CategoryGeneral] {
		t.Error("General must always be a valid category")
	}
}
