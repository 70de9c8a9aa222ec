package storage

const (
	KEY_MARKETKEYS = "storage::market_keys"
)
