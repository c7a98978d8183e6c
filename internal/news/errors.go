package news

import "errors"

var (
	// ErrMissingClientID is returned when the Naver client ID is not provided
	ErrMissingClientID = errors.New("naver client ID is required")

	// ErrMissingClientSecret is returned when the Naver client secret is not provided
	ErrMissingClientSecret = errors.New("naver client secret is required")

	// ErrUnsupportedProvider is returned when an unsupported provider type is specified
	ErrUnsupportedProvider = errors.New("unsupported news provider")

	// ErrRateLimited is returned when the search API reports quota exhaustion
	ErrRateLimited = errors.New("rate limit exceeded")
)
