package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PreApprovalStatus string

const (
	PreApprovalActive    PreApprovalStatus = "active"
	PreApprovalUsed      PreApprovalStatus = "used"
	PreApprovalExpired   PreApprovalStatus = "expired"
	PreApprovalCancelled PreApprovalStatus = "cancelled"
)

type PreApproval struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Visitor        VisitorInfo         `json:"visitor" bson:"visitor"`
	Host           Host                `json:"host" bson:"host"`
	Purpose        string              `json:"purpose" bson:"purpose"`
	ValidFrom      time.Time           `json:"valid_from" bson:"valid_from"`
	ValidUntil     time.Time           `json:"valid_until" bson:"valid_until"`
	RecurrenceRule string              `json:"recurrence_rule,omitempty" bson:"recurrence_rule,omitempty"`
	Passcode       string              `json:"passcode" bson:"passcode"`
	QRCode         string              `json:"qr_code" bson:"qr_code"`
	Status         PreApprovalStatus   `json:"status" bson:"status"`
	CreatedBy      primitive.ObjectID  `json:"created_by" bson:"created_by"`
	UsedBy         *primitive.ObjectID `json:"used_by,omitempty" bson:"used_by,omitempty"`
	UsedAt         *time.Time          `json:"used_at,omitempty" bson:"used_at,omitempty"`
	VisitID        *primitive.ObjectID `json:"visit_id,omitempty" bson:"visit_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`
}

// InWindow reports whether now lies strictly inside the validity window.
func (p *PreApproval) InWindow(now time.Time) bool {
	return now.After(p.ValidFrom) && now.Before(p.ValidUntil)
}

// PreApprovalTransition is a guarded status change on a pre-approval.
type PreApprovalTransition struct {
	From   PreApprovalStatus
	To     PreApprovalStatus
	At     time.Time
	UsedBy *primitive.ObjectID
}

type PreApprovalCreatePayload struct {
	VisitorName    string    `json:"visitor_name" validate:"required,min=3,max=100"`
	VisitorEmail   string    `json:"visitor_email" validate:"required,email"`
	VisitorPhone   string    `json:"visitor_phone" validate:"omitempty,max=30"`
	VisitorCompany string    `json:"visitor_company" validate:"omitempty,max=100"`
	Host           Host      `json:"host"`
	Purpose        string    `json:"purpose" validate:"required,min=3,max=500"`
	ValidFrom      time.Time `json:"valid_from" validate:"required"`
	ValidUntil     time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
	RecurrenceRule string    `json:"recurrence_rule,omitempty" validate:"omitempty,max=200"`
}

type PreApprovalStatusPayload struct {
	Status PreApprovalStatus `json:"status" validate:"required,oneof=cancelled"`
}
