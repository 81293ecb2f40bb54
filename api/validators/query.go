package validators

import (
	"net/http"
	"strings"

	"github.com/Mansi-10-4/nova/pkg/enums"
	pkgerrors "github.com/Mansi-10-4/nova/pkg/errors"
)

// ParseSortQuery reads an optional sort mode from the query string.
// ok is false when the parameter is absent.
func ParseSortQuery(r *http.Request, key string) (enums.SortMode, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", false, nil
	}
	mode, err := enums.ParseSortMode(raw)
	if err != nil {
		return "", false, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort mode").
			WithDetails(map[string]any{"field": key, "allowed": []enums.SortMode{enums.SortModeDefault, enums.SortModePriceLow, enums.SortModePriceHigh}})
	}
	return mode, true, nil
}

// ParseStringQuery reads an optional, trimmed and length-capped string parameter.
func ParseStringQuery(r *http.Request, key string, maxLen int) (string, bool) {
	values, present := r.URL.Query()[key]
	if !present || len(values) == 0 {
		return "", false
	}
	return SanitizeString(values[0], maxLen), true
}
