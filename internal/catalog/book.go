package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Book is one catalog entry.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	// The file key is "years" for compatibility with existing catalogs.
	Year  Year   `json:"years"`
	Genre string `json:"genre"`
	Read  bool   `json:"read"`
}

// Year is the publication year exactly as entered. It is not validated as a
// number and is always written back as a JSON string.
type Year string

// UnmarshalJSON accepts a string, a bare number or null. Numbers keep their
// literal text, so a hand-edited 1965 reads back as "1965".
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*y = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year: want string or number, got %s", data)
	}
	*y = Year(n.String())
	return nil
}

// Status reports the read state as shown to users.
func (b Book) Status() string {
	if b.Read {
		return "Read"
	}
	return "Unread"
}

func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%s) - %s - %s", b.Title, b.Author, b.Year, b.Genre, b.Status())
}
