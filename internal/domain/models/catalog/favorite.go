package catalog

import (
	"fmt"
	"time"
)

// ItemType selects the table a favorite's item_id resolves against.
type ItemType string

const (
	ItemTypeCourse ItemType = "course"
	ItemTypeModule ItemType = "module"
	ItemTypeLesson ItemType = "lesson"
)

// ParseItemType validates a caller-supplied item type string.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeCourse, ItemTypeModule, ItemTypeLesson:
		return ItemType(s), nil
	default:
		return "", fmt.Errorf("invalid item_type %q (want course, module or lesson)", s)
	}
}

// FavoriteItem is the tagged polymorphic reference a favorite points at.
// Resolution always goes through the tag; item_id alone is meaningless.
type FavoriteItem struct {
	Type ItemType `json:"item_type"`
	ID   int64    `json:"item_id"`
}

// Favorite marks an item as favorited by a user.
// (user_id, item_type, item_id) is logically unique; the store does not
// enforce it.
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ItemType  ItemType  `json:"item_type" db:"item_type"`
	ItemID    int64     `json:"item_id" db:"item_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// ItemDetails is the joined target summary, populated on reads only.
	// Nil when the target has since been deleted out from under the row.
	ItemDetails *FavoriteItemDetails `json:"item_details,omitempty" db:"-"`
}

// Item returns the favorite's polymorphic reference.
func (f *Favorite) Item() FavoriteItem {
	return FavoriteItem{Type: f.ItemType, ID: f.ItemID}
}

// FavoriteItemDetails is the denormalized summary of a favorite's target.
type FavoriteItemDetails struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug,omitempty"`      // courses only
	CourseID int64  `json:"course_id,omitempty"` // modules only
	ModuleID int64  `json:"module_id,omitempty"` // lessons only
}
