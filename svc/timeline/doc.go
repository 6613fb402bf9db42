// Package timeline reads the public GitHub events feed and turns each raw
// event into a display-ready Event with a short action phrase.
//
// Client performs a single request per Fetch, keeps at most Config.Limit
// events in upstream order and classifies failures as *FeedError values
// matching ErrFeedUnavailable or ErrRateLimited. CachedFetcher adds a short
// lived cache in front of any Fetcher; MemoryCache and RedisCache implement
// the storage.
package timeline
