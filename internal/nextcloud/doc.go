// Package nextcloud provides a client for the Nextcloud server APIs used
// by the MCP tools.
//
// The client is bound to a host URL and one credential at construction
// time and covers:
//   - OCS endpoints (capabilities, current user, file shares)
//   - App REST APIs (Notes, Deck, Tables, Cookbook)
//   - WebDAV storage and the CalDAV/CardDAV collections, through gowebdav,
//     with iCalendar and vCard payloads handled by emersion/go-ical and
//     emersion/go-vcard
//
// # Authentication
//
// Three constructors map to the server's deployment modes:
//
//	client, err := nextcloud.FromEnv()                        // static mode
//	client, err := nextcloud.New(host, username, password)    // session mode
//	client, err := nextcloud.NewWithToken(host, bearerToken)  // OAuth modes
//
// Clients created per request must be released with Close. Nextcloud does
// not hand out the account name with a bearer token, so token clients
// resolve it lazily via the OCS user endpoint when a DAV path needs it.
package nextcloud
