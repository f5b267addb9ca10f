// Package search maintains a full-text index over user profiles so clients
// can find people to add as friends. The index is derivative data: BadgerDB
// stays the source of truth and the index is rebuilt from it if lost.
package search

import (
	"context"
	"strings"

	"github.com/blugelabs/bluge"

	"openchat/domain"
)

// UserIndex indexes user name and email. Writes happen at registration
// time; reads serve the search endpoint.
type UserIndex struct {
	writer *bluge.Writer
}

func NewUserIndex(writer *bluge.Writer) *UserIndex {
	return &UserIndex{writer: writer}
}

// Index adds or replaces a user's entry.
func (idx *UserIndex) Index(user domain.User) error {
	doc := bluge.NewDocument(string(user.ID)).
		AddField(bluge.NewTextField("name", user.Name).StoreValue()).
		AddField(bluge.NewTextField("email", user.Email).StoreValue())
	return idx.writer.Update(doc.ID(), doc)
}

// Match is one search hit.
type Match struct {
	UserID domain.UserID
	Name   string
	Email  string
}

// Search returns up to limit users whose name or email matches the keyword.
// Exact term matches and prefixes both count, so a partial name typed in a
// search box finds the user.
func (idx *UserIndex) Search(ctx context.Context, keyword string, limit int) ([]Match, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, nil
	}

	query := bluge.NewBooleanQuery().
		AddShould(bluge.NewMatchQuery(keyword).SetField("name")).
		AddShould(bluge.NewMatchQuery(keyword).SetField("email")).
		AddShould(bluge.NewPrefixQuery(keyword).SetField("name")).
		AddShould(bluge.NewPrefixQuery(keyword).SetField("email"))

	reader, err := idx.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var matches []Match
	for {
		next, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		var m Match
		err = next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				m.UserID = domain.UserID(value)
			case "name":
				m.Name = string(value)
			case "email":
				m.Email = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}
