// Package session holds the two fetch sessions of the client: paginated
// search and single-item details.
//
// Each session owns one logical slot. Issuing a request supersedes whatever
// is in flight for that slot: the older request's context is cancelled and,
// more importantly, its completion is ignored because its generation token is
// no longer current. Only the last issued request ever mutates state.
package session

import (
	"omdb/finder/internal/client"
)

const (
	DefaultSearchError  = "no results found"
	DefaultDetailsError = "error loading details"
)

// errorMessage turns a fetch failure into the text shown to the user.
// Catalog errors are shown verbatim, anything else is stringified.
func errorMessage(err error, fallback string) string {
	if msg, ok := client.UpstreamMessage(err); ok {
		if msg == "" {
			return fallback
		}
		return msg
	}
	return err.Error()
}

// closedChan is returned for operations that settle without a request.
func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
