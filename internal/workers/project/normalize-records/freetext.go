// internal/workers/project/normalize-records/freetext.go
package normalizerecords

import (
	"strings"

	"project-analyzer/internal/models"
)

// normalizeFreeText turns blocks separated by an empty line ("\n\n") into
// records: line 1 is the name, line 2 the location, the rest the description.
// A whitespace-only line does not end a block; it is dropped like any other
// blank line inside one. It returns the records and the number of blocks
// skipped for being too short.
func (h *Handler) normalizeFreeText(data []byte) ([]models.ProjectRecord, int) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	records := []models.ProjectRecord{}
	skipped := 0

	flush := func(block []string) {
		if len(block) == 0 {
			return
		}
		if len(block) < h.config.MinBlockLines {
			skipped++
			h.logger.Debug("skipping short free-text block", map[string]interface{}{
				"lines":     len(block),
				"firstLine": block[0],
			})
			return
		}
		records = append(records, models.ProjectRecord{
			Name:        models.StringPtr(block[0]),
			Location:    models.StringPtr(block[1]),
			Description: models.StringPtr(strings.Join(block[2:], " ")),
		})
	}

	for _, chunk := range strings.Split(text, "\n\n") {
		var block []string
		for _, line := range strings.Split(chunk, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				block = append(block, line)
			}
		}
		flush(block)
	}

	return records, skipped
}
