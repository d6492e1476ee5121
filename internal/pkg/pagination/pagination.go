// Package pagination implements offset paging with opaque page tokens.
package pagination

import (
	"encoding/base64"
	"errors"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

var ErrInvalidPageToken = errors.New("invalid page_token")

// Page is a resolved page request.
type Page struct {
	Limit  int
	Offset int
}

// Parse clamps pageSize to [1, MaxPageSize], defaulting to DefaultPageSize,
// and decodes token into an offset.
func Parse(pageSize int, token string) (Page, error) {
	limit := pageSize
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset, err := decodePageToken(token)
	if err != nil {
		return Page{}, err
	}
	return Page{Limit: limit, Offset: offset}, nil
}

// NextToken returns the token of the following page, or "" when the page
// was not full.
func (p Page) NextToken(returned int) string {
	if returned < p.Limit {
		return ""
	}
	return encodePageToken(p.Offset + returned)
}

func encodePageToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodePageToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidPageToken
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}
	return offset, nil
}
