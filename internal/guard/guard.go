// Package guard holds the authorization predicates evaluated before every
// mutating operation. Each predicate returns a Decision instead of writing a
// response, so handlers and services consume them the same way and tests can
// check them without an HTTP request.
package guard

import (
	"errors"

	"blogsite/internal/models"
)

var (
	// ErrUnauthenticated means the caller must log in first.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is a terminal denial: logging in again will not help.
	ErrForbidden = errors.New("forbidden")
)

type Outcome int

const (
	Allowed Outcome = iota
	Redirect
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "allowed"
	case Redirect:
		return "redirect"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type Decision struct {
	Outcome Outcome
	Reason  string
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allowed
}

// Err converts the decision into the matching sentinel error, nil when allowed.
func (d Decision) Err() error {
	switch d.Outcome {
	case Allowed:
		return nil
	case Redirect:
		return ErrUnauthenticated
	default:
		return ErrForbidden
	}
}

func allow() Decision {
	return Decision{Outcome: Allowed}
}

// Authenticated passes any identity; nil is the anonymous identity.
func Authenticated(identity *models.Account) Decision {
	if identity == nil {
		return Decision{Outcome: Redirect, Reason: "not logged in"}
	}
	return allow()
}

func Admin(identity *models.Account) Decision {
	if d := Authenticated(identity); !d.Allowed() {
		return d
	}
	if !identity.IsAdmin {
		return Decision{Outcome: Forbidden, Reason: "administrator only"}
	}
	return allow()
}

// OwnerOrAdmin passes the owner of a resource and any administrator.
func OwnerOrAdmin(identity *models.Account, ownerID string) Decision {
	if d := Authenticated(identity); !d.Allowed() {
		return d
	}
	if identity.AccountID != ownerID && !identity.IsAdmin {
		return Decision{Outcome: Forbidden, Reason: "not the owner"}
	}
	return allow()
}
