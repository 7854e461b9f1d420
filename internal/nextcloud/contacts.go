package nextcloud

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
)

// addressBooksPath builds the CardDAV path for the user's address books.
func (c *Client) addressBooksPath(ctx context.Context, segments ...string) (string, error) {
	username, err := c.Username(ctx)
	if err != nil {
		return "", err
	}
	return path.Join(append([]string{"addressbooks", "users", username}, segments...)...), nil
}

// ListAddressBooks lists the address book collections of the user.
func (c *Client) ListAddressBooks(ctx context.Context) ([]AddressBook, error) {
	davPath, err := c.addressBooksPath(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := c.dav.ReadDir(davPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list address books: %w", err)
	}

	var books []AddressBook
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		books = append(books, AddressBook{
			Name: e.Name(),
			Path: path.Join(davPath, e.Name()),
		})
	}
	return books, nil
}

// ListContacts lists the contacts of an address book by reading its
// vCard objects.
func (c *Client) ListContacts(ctx context.Context, addressBook string) ([]Contact, error) {
	davPath, err := c.addressBooksPath(ctx, addressBook)
	if err != nil {
		return nil, err
	}

	entries, err := c.dav.ReadDir(davPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list address book %q: %w", addressBook, err)
	}

	var contacts []Contact
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".vcf") {
			continue
		}

		data, err := c.dav.Read(path.Join(davPath, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read contact %q: %w", e.Name(), err)
		}

		card, err := vcard.NewDecoder(bytes.NewReader(data)).Decode()
		if err != nil {
			continue
		}
		contacts = append(contacts, toContact(card))
	}
	return contacts, nil
}

// CreateContact creates a contact in the named address book and returns it
// with its generated UID.
func (c *Client) CreateContact(ctx context.Context, addressBook string, input ContactInput) (*Contact, error) {
	if input.FullName == "" {
		return nil, fmt.Errorf("contact full name is required")
	}

	uid := uuid.NewString()

	card := make(vcard.Card)
	card.SetValue(vcard.FieldUID, uid)
	card.SetValue(vcard.FieldFormattedName, input.FullName)
	if input.Email != "" {
		card.SetValue(vcard.FieldEmail, input.Email)
	}
	if input.Phone != "" {
		card.SetValue(vcard.FieldTelephone, input.Phone)
	}
	vcard.ToV4(card)

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(card); err != nil {
		return nil, fmt.Errorf("failed to encode contact: %w", err)
	}

	davPath, err := c.addressBooksPath(ctx, addressBook, uid+".vcf")
	if err != nil {
		return nil, err
	}
	if err := c.dav.Write(davPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to store contact: %w", err)
	}

	contact := toContact(card)
	return &contact, nil
}

// DeleteContact removes a contact from an address book by UID.
func (c *Client) DeleteContact(ctx context.Context, addressBook, uid string) error {
	davPath, err := c.addressBooksPath(ctx, addressBook, uid+".vcf")
	if err != nil {
		return err
	}
	if err := c.dav.Remove(davPath); err != nil {
		return fmt.Errorf("failed to delete contact %q: %w", uid, err)
	}
	return nil
}

// toContact extracts the fields this server exposes from a vCard.
func toContact(card vcard.Card) Contact {
	return Contact{
		UID:      card.PreferredValue(vcard.FieldUID),
		FullName: card.PreferredValue(vcard.FieldFormattedName),
		Emails:   card.Values(vcard.FieldEmail),
		Phones:   card.Values(vcard.FieldTelephone),
	}
}
