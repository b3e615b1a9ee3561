package domain

import "time"

const (
	// Validation constants
	MIN_TITLE_LENGTH = 5

	// Price history constants
	DEFAULT_PRICE_CHUNK_SIZE = 100
	DEFAULT_PRICE_TIMEZONE   = "Asia/Tokyo"

	// Crawl constants
	DEFAULT_REQUEST_DELAY    = 2 * time.Second
	DEFAULT_PROVIDER_TIMEOUT = 30 * time.Minute
)
