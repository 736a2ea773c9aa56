package domain

import "strings"

// Field keys with special meaning in a song template.
const (
	KeyTitle        = "Song"
	KeyPosterImage  = "Poster Image"
	KeySingerImages = "Singers Images"
)

// SongField is a single key/value pair from a song template.
type SongField struct {
	Key   string
	Value string
}

// SongInfo holds the parsed song template as an ordered field list.
// Insertion order is preserved because it determines the order of the
// footer text lines. Immutable once loaded.
type SongInfo struct {
	fields []SongField
}

// Append adds a field. Used by the template parser while loading;
// existing keys are overwritten in place to keep the mapping semantics.
func (s *SongInfo) Append(key, value string) {
	for i := range s.fields {
		if s.fields[i].Key == key {
			s.fields[i].Value = value
			return
		}
	}
	s.fields = append(s.fields, SongField{Key: key, Value: value})
}

// Get returns the value for a key and whether it was present.
func (s *SongInfo) Get(key string) (string, bool) {
	for _, f := range s.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Fields returns all fields in insertion order.
func (s *SongInfo) Fields() []SongField {
	return s.fields
}

// Title returns the song title.
func (s *SongInfo) Title() string {
	v, _ := s.Get(KeyTitle)
	return v
}

// PosterURL returns the poster image URL.
func (s *SongInfo) PosterURL() string {
	v, _ := s.Get(KeyPosterImage)
	return v
}

// SingerKeys returns the ordered singer image keys from the
// comma-separated "Singers Images" field.
func (s *SongInfo) SingerKeys() []string {
	v, ok := s.Get(KeySingerImages)
	if !ok {
		return nil
	}
	var keys []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

// FooterLines returns the "<key>: <value>" text lines rendered in the
// slide footer: every field whose key does not mention an image, in
// insertion order.
func (s *SongInfo) FooterLines() []string {
	var lines []string
	for _, f := range s.fields {
		if strings.Contains(f.Key, "Image") {
			continue
		}
		lines = append(lines, f.Key+": "+f.Value)
	}
	return lines
}
