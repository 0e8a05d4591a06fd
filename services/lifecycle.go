package services

import (
	"fmt"

	"visitor-management/models"
	"visitor-management/pkg/apperror"
)

type visitRule struct {
	from  []models.VisitStatus
	roles []models.Role
	// ownerOnly restricts visitors to their own visits; staff roles are unaffected.
	ownerOnly bool
}

var visitRules = map[models.VisitStatus]visitRule{
	models.VisitApproved: {
		from:  []models.VisitStatus{models.VisitPending},
		roles: []models.Role{models.RoleAdmin},
	},
	models.VisitRejected: {
		from:  []models.VisitStatus{models.VisitPending},
		roles: []models.Role{models.RoleAdmin},
	},
	models.VisitCheckedIn: {
		from:      []models.VisitStatus{models.VisitApproved},
		roles:     []models.Role{models.RoleAdmin, models.RoleReceptionist, models.RoleGuard, models.RoleVisitor},
		ownerOnly: true,
	},
	models.VisitCheckedOut: {
		from:      []models.VisitStatus{models.VisitCheckedIn},
		roles:     []models.Role{models.RoleAdmin, models.RoleReceptionist, models.RoleGuard, models.RoleVisitor},
		ownerOnly: true,
	},
	models.VisitCancelled: {
		from:      []models.VisitStatus{models.VisitPending, models.VisitApproved},
		roles:     []models.Role{models.RoleAdmin, models.RoleVisitor},
		ownerOnly: true,
	},
}

// AuthorizeVisitTransition decides whether actor may move visit to status to.
// The role (and ownership) check runs first, so a caller without the right
// role is refused whatever state the visit is in. The returned transition
// carries the permitted predecessors for the conditional update.
func AuthorizeVisitTransition(actor *models.Claims, visit *models.Visit, to models.VisitStatus) (models.VisitTransition, error) {
	rule, ok := visitRules[to]
	if !ok {
		return models.VisitTransition{}, apperror.Validation(fmt.Sprintf("unsupported target status %q", to))
	}

	if actor == nil || !hasRole(rule.roles, actor.Role) {
		return models.VisitTransition{}, apperror.Forbidden("your role cannot perform this action")
	}
	if rule.ownerOnly && actor.Role == models.RoleVisitor && visit.VisitorID != actor.UserID {
		return models.VisitTransition{}, apperror.Forbidden("this visit belongs to another visitor")
	}

	t := models.VisitTransition{From: rule.from, To: to}
	if !t.Permits(visit.Status) {
		return models.VisitTransition{}, invalidTransition(visit.Status, to)
	}
	return t, nil
}

func invalidTransition(from, to models.VisitStatus) error {
	return apperror.InvalidTransition(fmt.Sprintf("cannot change visit from %s to %s", from, to))
}

func hasRole(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
