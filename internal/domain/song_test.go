package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSongInfoOrdering(t *testing.T) {
	info := &SongInfo{}
	info.Append("Song", "Test Song")
	info.Append("Film", "Test Film")
	info.Append("Singers (Original)", "A, B")
	info.Append("Poster Image", "https://example.com/poster.jpg")
	info.Append("Singers Images", "alice, bob")

	assert.Equal(t, "Test Song", info.Title())
	assert.Equal(t, "https://example.com/poster.jpg", info.PosterURL())

	// Insertion order is preserved
	fields := info.Fields()
	assert.Equal(t, "Song", fields[0].Key)
	assert.Equal(t, "Film", fields[1].Key)
	assert.Equal(t, "Singers (Original)", fields[2].Key)
}

func TestSongInfoAppendOverwrites(t *testing.T) {
	info := &SongInfo{}
	info.Append("Song", "First")
	info.Append("Film", "Some Film")
	info.Append("Song", "Second")

	v, ok := info.Get("Song")
	assert.True(t, ok)
	assert.Equal(t, "Second", v)
	assert.Len(t, info.Fields(), 2)
}

func TestSingerKeys(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{
			name:     "simple list",
			value:    "alice,bob",
			expected: []string{"alice", "bob"},
		},
		{
			name:     "whitespace trimmed",
			value:    " alice , bob , carol ",
			expected: []string{"alice", "bob", "carol"},
		},
		{
			name:     "empty entries dropped",
			value:    "alice,,bob,",
			expected: []string{"alice", "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &SongInfo{}
			info.Append(KeySingerImages, tt.value)
			assert.Equal(t, tt.expected, info.SingerKeys())
		})
	}
}

func TestFooterLinesSkipImageFields(t *testing.T) {
	info := &SongInfo{}
	info.Append("Song", "Test Song")
	info.Append("Poster Image", "https://example.com/poster.jpg")
	info.Append("Film", "Test Film")
	info.Append("Singers Images", "alice, bob")
	info.Append("Singers (Karaoke)", "Carol")

	assert.Equal(t, []string{
		"Song: Test Song",
		"Film: Test Film",
		"Singers (Karaoke): Carol",
	}, info.FooterLines())
}

func TestTimelineSlideAt(t *testing.T) {
	tl := &Timeline{
		Slides: []Slide{
			{Duration: 30},
			{Duration: 30},
			{Duration: 5},
		},
		Duration: 65,
	}

	_, ok := tl.SlideAt(-1)
	assert.False(t, ok)

	s, ok := tl.SlideAt(0)
	assert.True(t, ok)
	assert.Equal(t, float64(30), s.Duration)

	s, ok = tl.SlideAt(60)
	assert.True(t, ok)
	assert.Equal(t, float64(5), s.Duration)

	_, ok = tl.SlideAt(65)
	assert.False(t, ok)
}
