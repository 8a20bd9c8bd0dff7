package ballot

import "strings"

// ValidateAddRequest checks the fields the store requires before accepting a ballot.
func ValidateAddRequest(req AddRequest, corporations CorporationLookup) error {
	errs := FieldErrors{}
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(req.Corporation) == "" {
		errs["corporation"] = "Corporation is required"
	} else if corporations != nil && !corporations.Contains(req.Corporation) {
		errs["corporation"] = "Unknown owners corporation"
	}
	return errs.Err()
}
