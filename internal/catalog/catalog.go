package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Document is the decoded top-level structure of a carousel file.
type Document struct {
	Images []Image `json:"images"`
}

// Image is one carousel slide and the items listed under it.
type Image struct {
	ID    uuid.UUID `json:"-"`
	URL   string    `json:"url"`
	Items []Item    `json:"items"`
}

// Item is a single row in an image's list.
type Item struct {
	ID       uuid.UUID `json:"-"`
	Title    string    `json:"title"`
	ImageURL string    `json:"imageUrl"`
}

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
	ErrMissingField    = errors.New("missing required field")
)

type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode document: %v", e.Err)
	}
	return fmt.Sprintf("decode document: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type rawDocument struct {
	Images *[]rawImage `json:"images"`
}

type rawImage struct {
	URL   *string    `json:"url"`
	Items *[]rawItem `json:"items"`
}

type rawItem struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"imageUrl"`
}

// Decode parses raw as a Document. Every image and item gets a fresh ID, so
// decoding the same bytes twice never yields equal identities.
func Decode(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, &DecodeError{Err: ErrEmptyInput}
	}
	if !utf8.Valid(raw) {
		return Document{}, &DecodeError{Err: ErrInvalidEncoding}
	}

	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Document{}, &DecodeError{Path: typeErr.Field, Err: err}
		}
		return Document{}, &DecodeError{Err: err}
	}
	if doc.Images == nil {
		return Document{}, &DecodeError{Path: "images", Err: ErrMissingField}
	}

	out := Document{Images: make([]Image, 0, len(*doc.Images))}
	for i, img := range *doc.Images {
		prefix := fmt.Sprintf("images[%d]", i)
		if img.URL == nil {
			return Document{}, &DecodeError{Path: prefix + ".url", Err: ErrMissingField}
		}
		if img.Items == nil {
			return Document{}, &DecodeError{Path: prefix + ".items", Err: ErrMissingField}
		}

		items := make([]Item, 0, len(*img.Items))
		for j, it := range *img.Items {
			itemPath := fmt.Sprintf("%s.items[%d]", prefix, j)
			if it.Title == nil {
				return Document{}, &DecodeError{Path: itemPath + ".title", Err: ErrMissingField}
			}
			if it.ImageURL == nil {
				return Document{}, &DecodeError{Path: itemPath + ".imageUrl", Err: ErrMissingField}
			}
			items = append(items, Item{
				ID:       uuid.New(),
				Title:    *it.Title,
				ImageURL: *it.ImageURL,
			})
		}
		out.Images = append(out.Images, Image{
			ID:    uuid.New(),
			URL:   *img.URL,
			Items: items,
		})
	}
	return out, nil
}

// ItemCount returns the number of items across all images.
func (d Document) ItemCount() int {
	total := 0
	for _, img := range d.Images {
		total += len(img.Items)
	}
	return total
}
