package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bmaharathi/zombiegene/internal/service"
)

// parseSelection reads genes and mode from the query string. An absent genes
// parameter keeps the default ids; a present but empty one selects nothing.
func parseSelection(query url.Values, def service.Selection) (service.Selection, error) {
	sel := def

	if raw := strings.TrimSpace(query.Get("mode")); raw != "" {
		mode, err := service.ParseMode(raw)
		if err != nil {
			return service.Selection{}, err
		}
		sel.Mode = mode
	}

	rawValues, present := query["genes"]
	if !present {
		return sel, nil
	}
	ids, err := parseGeneIDs(rawValues)
	if err != nil {
		return service.Selection{}, err
	}
	sel.GeneIDs = ids
	return sel, nil
}

// parseGeneIDs accepts repeated values (?genes=1&genes=2), comma-separated
// lists (?genes=1,2) and JSON arrays (?genes=[1,2]).
func parseGeneIDs(rawValues []string) ([]int, error) {
	out := make([]int, 0, len(rawValues))
	for _, raw := range rawValues {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if strings.HasPrefix(raw, "[") {
			var ids []int
			if err := json.Unmarshal([]byte(raw), &ids); err != nil {
				return nil, fmt.Errorf("invalid genes %q: %w", raw, err)
			}
			for _, id := range ids {
				if id < 1 {
					return nil, fmt.Errorf("invalid gene id %d", id)
				}
			}
			out = append(out, ids...)
			continue
		}

		for _, p := range strings.Split(raw, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			id, err := strconv.Atoi(p)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("invalid gene id %q", p)
			}
			out = append(out, id)
		}
	}
	return out, nil
}

// selectionQuery encodes sel so that parseSelection returns it unchanged.
func selectionQuery(sel service.Selection) url.Values {
	ids := make([]string, len(sel.GeneIDs))
	for i, id := range sel.GeneIDs {
		ids[i] = strconv.Itoa(id)
	}
	return url.Values{
		"genes": {strings.Join(ids, ",")},
		"mode":  {sel.Mode.Code()},
	}
}
