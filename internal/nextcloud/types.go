package nextcloud

import "encoding/json"

// Capabilities is the capability document served by a Nextcloud host.
// App capabilities are kept raw; callers only ever inspect the fragments
// for the apps they care about.
type Capabilities struct {
	Version      ServerVersion              `json:"version"`
	Capabilities map[string]json.RawMessage `json:"capabilities"`
}

// ServerVersion identifies the Nextcloud server release.
type ServerVersion struct {
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Micro   int    `json:"micro"`
	String  string `json:"string"`
	Edition string `json:"edition"`
}

// Note is a note from the Nextcloud Notes app.
type Note struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Modified int64  `json:"modified"`
	Favorite bool   `json:"favorite"`
	Etag     string `json:"etag"`
}

// NoteInput carries the fields for creating or updating a note.
type NoteInput struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty"`
}

// FileInfo describes a file or directory in the user's WebDAV storage.
type FileInfo struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
	IsDir       bool   `json:"isDir"`
	Modified    string `json:"modified,omitempty"`
}

// Calendar describes a CalDAV calendar collection.
type Calendar struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Event is a calendar event extracted from an iCalendar object.
type Event struct {
	UID      string `json:"uid"`
	Summary  string `json:"summary"`
	Location string `json:"location,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

// EventInput carries the fields for creating a calendar event.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       string // RFC 3339
	End         string // RFC 3339
}

// AddressBook describes a CardDAV address book collection.
type AddressBook struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Contact is a contact extracted from a vCard.
type Contact struct {
	UID      string   `json:"uid"`
	FullName string   `json:"fullName"`
	Emails   []string `json:"emails,omitempty"`
	Phones   []string `json:"phones,omitempty"`
}

// ContactInput carries the fields for creating a contact.
type ContactInput struct {
	FullName string
	Email    string
	Phone    string
}

// Board is a Deck board.
type Board struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	Archived bool   `json:"archived"`
}

// Stack is a column on a Deck board, including its cards.
type Stack struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
	Cards []Card `json:"cards,omitempty"`
}

// Card is a Deck card.
type Card struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StackID     int    `json:"stackId"`
	Order       int    `json:"order"`
	Archived    bool   `json:"archived"`
	DueDate     string `json:"duedate,omitempty"`
}

// CardInput carries the fields for creating a Deck card.
type CardInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Order       int    `json:"order"`
}

// Table is a Nextcloud Tables table.
type Table struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Emoji     string `json:"emoji,omitempty"`
	RowsCount int    `json:"rowsCount"`
}

// Row is a row of a Tables table.
type Row struct {
	ID   int        `json:"id"`
	Data []RowValue `json:"data"`
}

// RowValue is a single cell of a table row.
type RowValue struct {
	ColumnID int `json:"columnId"`
	Value    any `json:"value"`
}

// RecipeSummary is a recipe stub from the Cookbook app listing.
type RecipeSummary struct {
	ID       json.Number `json:"recipe_id"`
	Name     string      `json:"name"`
	Keywords string      `json:"keywords,omitempty"`
}

// Recipe is a full Cookbook recipe.
type Recipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"recipeIngredient,omitempty"`
	Instructions []string `json:"recipeInstructions,omitempty"`
	Yield        string   `json:"recipeYield,omitempty"`
}

// Share is a file share from the files_sharing OCS API.
type Share struct {
	ID          string `json:"id"`
	ShareType   int    `json:"share_type"`
	Path        string `json:"path"`
	ShareWith   string `json:"share_with,omitempty"`
	Permissions int    `json:"permissions"`
	URL         string `json:"url,omitempty"`
}

// Share types understood by the files_sharing API.
const (
	ShareTypeUser   = 0
	ShareTypeGroup  = 1
	ShareTypeLink   = 3
	ShareTypeRemote = 6
)
