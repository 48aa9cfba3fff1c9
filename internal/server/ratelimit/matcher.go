package ratelimit

import "strings"

// MatchEndpoint returns the configuration that governs method on path, or nil when the
// default limit applies. An exact path wins. Otherwise the longest configured path ending
// in "/" that prefixes path matches, so "/company/" covers "/company/{name}/research".
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) &&
			(prefix == nil || len(c.Path) > len(prefix.Path)) {
			prefix = c
		}
	}
	return prefix
}
