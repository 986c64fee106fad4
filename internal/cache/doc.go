// Package cache provides a sharded LRU cache for per-object driver state,
// such as the sampler parameters last applied to each texture.
//
// Keys are spread over DefaultShardCount shards by a Hasher; each shard
// evicts its least recently used entry once it holds its capacity.
package cache
