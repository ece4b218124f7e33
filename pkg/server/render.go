package server

import (
	"fmt"
	"strings"

	"github.com/tmpstash/tmpstash/pkg/messages"
	"github.com/tmpstash/tmpstash/pkg/upload"
)

// renderResults formats the per-file outcomes as HTML paragraphs separated by
// horizontal rules, preserving submission order.
func renderResults(results []upload.Result) string {
	fragments := make([]string, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			fragments = append(fragments, fmt.Sprintf(messages.RespUploadFailed, res.Name, res.Err))
			continue
		}
		fragments = append(fragments, fmt.Sprintf(messages.RespUploadSucceeded, res.Name, res.URL, res.URL, res.TTLSeconds))
	}
	return strings.Join(fragments, "<hr>")
}
