package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent generation requests. Using a centralized singleflight.Group
// ensures that only one generation job runs for a given key while other
// callers wait for the result.

import "golang.org/x/sync/singleflight"

// SummaryGroup deduplicates victory-summary generation requests keyed by
// the battle join code.
var SummaryGroup singleflight.Group
