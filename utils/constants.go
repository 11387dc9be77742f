package utils

import "time"

// RulesCachePrefix is the prefix used for Redis booking-rules cache keys.
const RulesCachePrefix = "rules:"

// RulesCacheTTL is the time-to-live for cached booking-rules documents.
const RulesCacheTTL = 10 * time.Minute

// QuoteCachePrefix is the prefix used for quote session keys.
const QuoteCachePrefix = "quote:"

// QuoteCacheTTL is how long a quoted price stays reservable.
const QuoteCacheTTL = 15 * time.Minute
