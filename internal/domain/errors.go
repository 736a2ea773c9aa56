package domain

import "errors"

var (
	// ErrConfiguration covers bad or missing inputs: a missing image
	// directory, a missing music file, an empty catalog or a zero-length
	// plan. Nothing can be rendered from a broken configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrAsset covers assets that exist but cannot be used: an image that
	// does not decode or an audio track that cannot be opened.
	ErrAsset = errors.New("asset error")

	// ErrNetwork covers poster resolution and download failures.
	ErrNetwork = errors.New("network error")
)
