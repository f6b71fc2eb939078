package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagValidation marks errors caused by missing or malformed client input
	ErrTagValidation = goerr.NewTag("validation")

	// ErrTagUpstream marks network failures and unexpected responses of the upstream site
	ErrTagUpstream = goerr.NewTag("upstream")

	// ErrTagNotFound marks lookups that completed but found nothing usable
	ErrTagNotFound = goerr.NewTag("not_found")
)
