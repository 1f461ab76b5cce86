package pathutil

import (
	"regexp"
	"strings"
)

// ChannelParamRegex matches channel address parameters like {userId}.
// It captures the parameter name inside the braces.
var ChannelParamRegex = regexp.MustCompile(`^\{([^}]+)\}$`)

// MapChannelSegments applies fn to every "/"-separated segment of a channel
// address, leaving parameter segments such as "{userId}" and empty
// segments untouched.
func MapChannelSegments(address string, fn func(string) string) string {
	segments := strings.Split(address, "/")
	for i, seg := range segments {
		if seg == "" || ChannelParamRegex.MatchString(seg) {
			continue
		}
		segments[i] = fn(seg)
	}
	return strings.Join(segments, "/")
}
