package fetcher

// Result is the outcome of a successful fetch.
type Result struct {
	// Content is the serialized outer markup of the root document
	// element at extraction time. No normalization, no size limit.
	Content string

	// NavigationMs is the time spent loading the base document.
	NavigationMs int64

	// ScrollMs is the time spent in the scroll-and-detect loop,
	// including the post-scroll settle.
	ScrollMs int64
}
