package store

// Declare database key prefix for objects
const (
	PrefixBlock     = "blk:"
	PrefixBlockMeta = "blk_meta:"

	BlockMetaKeyLatest = "latest"
)
