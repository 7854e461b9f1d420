package nextcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newNotesTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	notes := []Note{
		{ID: 1, Title: "Groceries", Content: "Milk, eggs", Category: "shopping", Modified: 1724500000},
		{ID: 2, Title: "Meeting notes", Content: "Quarterly review", Category: "work", Modified: 1724600000},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/index.php/apps/notes/api/v1/notes":
			_ = json.NewEncoder(w).Encode(notes)
		case r.Method == http.MethodGet && r.URL.Path == "/index.php/apps/notes/api/v1/notes/1":
			_ = json.NewEncoder(w).Encode(notes[0])
		case r.Method == http.MethodPost && r.URL.Path == "/index.php/apps/notes/api/v1/notes":
			var input NoteInput
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				t.Errorf("Failed to decode create body: %v", err)
			}
			created := Note{ID: 3, Title: input.Title, Content: input.Content, Category: input.Category}
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(created)
		case r.Method == http.MethodDelete && r.URL.Path == "/index.php/apps/notes/api/v1/notes/2":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, "alice", "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(client.Close)

	return srv, client
}

func TestListNotes(t *testing.T) {
	_, client := newNotesTestServer(t)

	notes, err := client.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes returned error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "Groceries" {
		t.Errorf("Expected first note Groceries, got %q", notes[0].Title)
	}
}

func TestGetNote(t *testing.T) {
	_, client := newNotesTestServer(t)

	note, err := client.GetNote(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetNote returned error: %v", err)
	}
	if note.Category != "shopping" {
		t.Errorf("Expected category shopping, got %q", note.Category)
	}
}

func TestCreateNote(t *testing.T) {
	_, client := newNotesTestServer(t)

	note, err := client.CreateNote(context.Background(), NoteInput{Title: "New", Content: "Body"})
	if err != nil {
		t.Fatalf("CreateNote returned error: %v", err)
	}
	if note.ID != 3 || note.Title != "New" {
		t.Errorf("Unexpected created note: %+v", note)
	}

	if _, err := client.CreateNote(context.Background(), NoteInput{}); err == nil {
		t.Error("Expected error for empty note input")
	}
}

func TestDeleteNote(t *testing.T) {
	_, client := newNotesTestServer(t)

	if err := client.DeleteNote(context.Background(), 2); err != nil {
		t.Fatalf("DeleteNote returned error: %v", err)
	}
	if err := client.DeleteNote(context.Background(), 99); err == nil {
		t.Error("Expected error for unknown note")
	}
}

func TestSearchNotes(t *testing.T) {
	_, client := newNotesTestServer(t)

	matches, err := client.SearchNotes(context.Background(), "quarterly")
	if err != nil {
		t.Fatalf("SearchNotes returned error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != 2 {
		t.Errorf("Expected to match note 2, got %+v", matches)
	}

	matches, err = client.SearchNotes(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("SearchNotes returned error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected no matches, got %d", len(matches))
	}
}
