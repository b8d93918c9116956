// Package access holds the single-designated-caller checks used by both
// registries. Each guarded operation calls one of these first, before it
// reads or writes any state.
package access

import (
	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

// RequireDesignated fails with CodeForbidden unless caller is the one
// principal allowed in role. An unset (zero) designation admits nobody.
func RequireDesignated(caller, designated id.Principal, role string) error {
	if caller.IsZero() || caller != designated {
		return dErrors.New(dErrors.CodeForbidden, "caller is not the "+role)
	}
	return nil
}

// RequireOwner is RequireDesignated for the registry owner.
func RequireOwner(caller, owner id.Principal) error {
	return RequireDesignated(caller, owner, "owner")
}

// RequireNonZero rejects the null address as a new designation.
func RequireNonZero(p id.Principal) error {
	if p.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "zero address")
	}
	return nil
}
