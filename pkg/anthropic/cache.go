package anthropic

// BuildCachedSystemBlocks constructs system content blocks with a cache
// breakpoint. Extraction prompts share one long system text per operation,
// so repeated calls within the TTL read it from the prompt cache.
func BuildCachedSystemBlocks(text string) []SystemBlock {
	return []SystemBlock{
		{
			Text: text,
			CacheControl: &CacheControl{
				TTL: "5m",
			},
		},
	}
}
