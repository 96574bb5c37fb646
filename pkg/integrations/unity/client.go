package unity

import (
	"context"
	"strings"

	"github.com/matzehuels/handlermap/pkg/integrations"
)

const (
	// CallHandlersPath is the collection endpoint for call handlers.
	CallHandlersPath = "/vmrest/handlers/callhandlers/"

	// nonPrimaryQuery selects handlers that are not a mailbox's primary handler.
	nonPrimaryQuery = "(IsPrimary is 0)"
)

// Client fetches call handlers and menu entries from one server.
type Client struct {
	baseURL string
	http    *integrations.Client
}

// NewClient creates a client for the service rooted at baseURL
// (for example "https://cuc.example.com").
func NewClient(baseURL string, opts integrations.Options) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    integrations.NewClient(opts),
	}
}

// CallHandlersURL returns the URL of the non-primary call handler listing.
func (c *Client) CallHandlersURL() string {
	return c.baseURL + CallHandlersPath + "?query=" + strings.ReplaceAll(nonPrimaryQuery, " ", "%20")
}

// CallHandlers lists the non-primary call handlers in server order.
func (c *Client) CallHandlers(ctx context.Context) (*CallHandlerList, error) {
	var list CallHandlerList
	if err := c.http.Get(ctx, c.CallHandlersURL(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// MenuEntries lists the menu entries found at uri, a server-relative path
// taken from [CallHandler].MenuEntriesURI.
func (c *Client) MenuEntries(ctx context.Context, uri string) ([]MenuEntry, error) {
	var list MenuEntryList
	if err := c.http.Get(ctx, c.baseURL+uri, &list); err != nil {
		return nil, err
	}
	return list.MenuEntries, nil
}
