package domain

import "image"

// PlanEntry is one slot in a sequence plan: the image that will become a
// slide and the duration it will be shown for.
type PlanEntry struct {
	ImagePath string
	Duration  float64
}

// Slide is one fully composited canvas tagged with its playback duration
// in seconds. Immutable once produced.
type Slide struct {
	Image    *image.RGBA
	Duration float64
}

// Timeline is the ordered slide sequence with its attached audio track,
// trimmed so the total playable duration never exceeds the audio's.
type Timeline struct {
	Slides    []Slide
	AudioPath string
	Duration  float64
}

// SlideAt returns the slide visible at the given timestamp, or false if
// the timestamp falls outside the timeline.
func (t *Timeline) SlideAt(seconds float64) (Slide, bool) {
	if seconds < 0 || seconds >= t.Duration {
		return Slide{}, false
	}
	var elapsed float64
	for _, s := range t.Slides {
		elapsed += s.Duration
		if seconds < elapsed {
			return s, true
		}
	}
	return Slide{}, false
}
