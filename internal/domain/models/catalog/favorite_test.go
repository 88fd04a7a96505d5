package catalog

import "testing"

func TestParseItemType(t *testing.T) {
	tests := []struct {
		input   string
		want    ItemType
		wantErr bool
	}{
		{input: "course", want: ItemTypeCourse},
		{input: "module", want: ItemTypeModule},
		{input: "lesson", want: ItemTypeLesson},
		{input: "category", wantErr: true},
		{input: "Course", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseItemType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseItemType(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseItemType(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseItemType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFavoriteItem(t *testing.T) {
	f := &Favorite{ID: 7, UserID: "u", ItemType: ItemTypeLesson, ItemID: 42}
	item := f.Item()
	if item.Type != ItemTypeLesson || item.ID != 42 {
		t.Errorf("Item() = %+v", item)
	}
}
