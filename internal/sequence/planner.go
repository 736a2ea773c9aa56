// Package sequence decides how many slides a slideshow needs and in what
// order the catalog images fill them.
package sequence

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

// Plan builds the ordered slide plan for a song: the poster first, then
// the catalog repeated through independent shuffle passes until there are
// enough entries to cover the audio, truncated to exactly the number of
// slides needed.
//
// Each pass is a fresh permutation of the whole catalog, so within a pass
// no image repeats before every image has appeared once. The final
// truncation may cut a pass short; for short songs that means the poster
// plus a prefix of the first shuffle.
func Plan(images []string, posterPath string, audioDuration, slideDuration float64, rng *rand.Rand) ([]domain.PlanEntry, error) {
	if slideDuration <= 0 {
		return nil, fmt.Errorf("%w: slide duration must be positive, got %v", domain.ErrConfiguration, slideDuration)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: cannot plan a slideshow with no images", domain.ErrConfiguration)
	}

	slidesNeeded := int(math.Ceil(audioDuration / slideDuration))
	if slidesNeeded < 1 {
		return nil, fmt.Errorf("%w: audio duration %vs yields an empty plan", domain.ErrConfiguration, audioDuration)
	}

	repeatsNeeded := int(math.Ceil(float64(slidesNeeded) / float64(len(images))))

	plan := make([]domain.PlanEntry, 0, 1+repeatsNeeded*len(images))
	plan = append(plan, domain.PlanEntry{ImagePath: posterPath, Duration: slideDuration})

	for range repeatsNeeded {
		pass := make([]string, len(images))
		copy(pass, images)
		rng.Shuffle(len(pass), func(i, j int) {
			pass[i], pass[j] = pass[j], pass[i]
		})
		for _, path := range pass {
			plan = append(plan, domain.PlanEntry{ImagePath: path, Duration: slideDuration})
		}
	}

	if len(plan) > slidesNeeded {
		plan = plan[:slidesNeeded]
	}
	return plan, nil
}
