// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated payloads and the calling user from the handlers, enforces
// existence and ownership rules, and calls repository methods to read
// and persist data. Every dependency is a small interface declared next
// to the service that consumes it.
package service

import (
	"strings"

	"github.com/deppfellow/gs-backend/internal/errs"
	"github.com/deppfellow/gs-backend/internal/model"
	"github.com/deppfellow/gs-backend/internal/validation"
)

const (
	msgAuthRequired   = "Authentication credentials were not provided."
	msgPermission     = "You do not have permission to perform this action."
	msgInvalidToken   = "Invalid token."
	msgInvalidBasic   = "Invalid username/password."
	msgInactiveUser   = "User inactive or deleted."
	msgBadCredentials = "Unable to log in with provided credentials."
)

// requireUser fails with 401 for anonymous callers.
func requireUser(actor *model.User) error {
	if actor == nil {
		return errs.NewUnauthorizedError(msgAuthRequired, true)
	}
	return nil
}

// requireSuperuser fails with 401 for anonymous callers and 403 for
// everyone but superusers.
func requireSuperuser(actor *model.User) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if !actor.IsSuperuser {
		return errs.NewForbiddenError(msgPermission, true)
	}
	return nil
}

// requireOwner fails unless actor owns the resource or is a superuser.
func requireOwner(actor *model.User, ownerID int64) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if !actor.CanModify(ownerID) {
		return errs.NewForbiddenError(msgPermission, true)
	}
	return nil
}

// cleanText strips markup from user text and rejects what is left blank.
func cleanText(text string) (string, error) {
	cleaned := validation.SanitizeText(text)
	if strings.TrimSpace(cleaned) == "" {
		return "", errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{
			Field: "text",
			Error: "may not be blank",
		}}, nil)
	}
	return cleaned, nil
}

