package common

import "fmt"

func ShortenName(s string, length int) string {
	if len(s) <= length*2 {
		return s
	}

	first := s[:length]
	last := s[len(s)-length:]
	return fmt.Sprintf("%s__%s", first, last)
}
