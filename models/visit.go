package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VisitStatus string

const (
	VisitPending    VisitStatus = "pending"
	VisitApproved   VisitStatus = "approved"
	VisitRejected   VisitStatus = "rejected"
	VisitCheckedIn  VisitStatus = "checked-in"
	VisitCheckedOut VisitStatus = "checked-out"
	VisitCancelled  VisitStatus = "cancelled"
)

func (s VisitStatus) Valid() bool {
	switch s {
	case VisitPending, VisitApproved, VisitRejected, VisitCheckedIn, VisitCheckedOut, VisitCancelled:
		return true
	}
	return false
}

type Host struct {
	Name       string `json:"name" bson:"name" validate:"required,max=100"`
	Email      string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Department string `json:"department,omitempty" bson:"department,omitempty" validate:"omitempty,max=100"`
}

// VisitorInfo is a snapshot of who the visitor is at the time of the visit.
type VisitorInfo struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Company string `json:"company,omitempty" bson:"company,omitempty"`
}

type Visit struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	VisitorID     primitive.ObjectID  `json:"visitor_id,omitempty" bson:"visitor_id,omitempty"`
	Visitor       VisitorInfo         `json:"visitor" bson:"visitor"`
	Host          Host                `json:"host" bson:"host"`
	Purpose       string              `json:"purpose" bson:"purpose"`
	VisitDate     time.Time           `json:"visit_date" bson:"visit_date"`
	CheckInTime   *time.Time          `json:"check_in_time,omitempty" bson:"check_in_time,omitempty"`
	CheckOutTime  *time.Time          `json:"check_out_time,omitempty" bson:"check_out_time,omitempty"`
	Status        VisitStatus         `json:"status" bson:"status"`
	Passcode      string              `json:"passcode,omitempty" bson:"passcode"`
	QRCode        string              `json:"qr_code,omitempty" bson:"qr_code"`
	CreatedBy     primitive.ObjectID  `json:"created_by,omitempty" bson:"created_by,omitempty"`
	ApprovedBy    *primitive.ObjectID `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	PreApprovalID *primitive.ObjectID `json:"pre_approval_id,omitempty" bson:"pre_approval_id,omitempty"`
	Notes         string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

// VisitWithVisitor is a visit joined with the visitor's account, for admin listings.
type VisitWithVisitor struct {
	Visit        `bson:",inline"`
	VisitorPhoto string `json:"visitor_photo,omitempty" bson:"visitor_photo,omitempty"`
}

// VisitTransition describes one guarded status change. From lists the statuses
// the record must currently be in for the change to apply.
type VisitTransition struct {
	From       []VisitStatus
	To         VisitStatus
	At         time.Time
	ApprovedBy *primitive.ObjectID
	Notes      string
}

// Permits reports whether a record in status s may take this transition.
func (t VisitTransition) Permits(s VisitStatus) bool {
	for _, f := range t.From {
		if f == s {
			return true
		}
	}
	return false
}

// SetDocument is the $set payload for the transition. Check-in and check-out
// times are written only by the transitions into those states.
func (t VisitTransition) SetDocument() bson.M {
	set := bson.M{
		"status":     t.To,
		"updated_at": t.At,
	}
	switch t.To {
	case VisitCheckedIn:
		set["check_in_time"] = t.At
	case VisitCheckedOut:
		set["check_out_time"] = t.At
	}
	if t.ApprovedBy != nil {
		set["approved_by"] = *t.ApprovedBy
	}
	if t.Notes != "" {
		set["notes"] = t.Notes
	}
	return set
}

// Apply mutates v the same way SetDocument does in storage. It returns false
// and leaves v untouched when v's status is not a permitted predecessor.
func (v *Visit) Apply(t VisitTransition) bool {
	if !t.Permits(v.Status) {
		return false
	}
	at := t.At
	v.Status = t.To
	v.UpdatedAt = at
	switch t.To {
	case VisitCheckedIn:
		v.CheckInTime = &at
	case VisitCheckedOut:
		v.CheckOutTime = &at
	}
	if t.ApprovedBy != nil {
		id := *t.ApprovedBy
		v.ApprovedBy = &id
	}
	if t.Notes != "" {
		v.Notes = t.Notes
	}
	return true
}

// VisitFilter narrows admin visit listings. Zero values mean "any".
type VisitFilter struct {
	Status VisitStatus
	From   time.Time
	To     time.Time
}

type VisitCreatePayload struct {
	Host      Host      `json:"host"`
	Purpose   string    `json:"purpose" validate:"required,min=3,max=500"`
	VisitDate time.Time `json:"visit_date" validate:"required"`
}

type VisitDecisionPayload struct {
	Status VisitStatus `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string      `json:"notes" validate:"omitempty,max=500"`
}

type CheckInPayload struct {
	Passcode string `json:"passcode" validate:"required,alphanum,max=32"`
}

type StatusCount struct {
	Status VisitStatus `json:"status" bson:"_id"`
	Count  int64       `json:"count" bson:"count"`
}

type DepartmentCount struct {
	Department string `json:"department" bson:"_id"`
	Count      int64  `json:"count" bson:"count"`
}

type VisitStats struct {
	TotalVisits            int64             `json:"total_visits"`
	ByStatus               []StatusCount     `json:"by_status"`
	TodayVisits            int64             `json:"today_visits"`
	CurrentlyCheckedIn     int64             `json:"currently_checked_in"`
	PendingApprovals       int64             `json:"pending_approvals"`
	ActivePreApprovals     int64             `json:"active_pre_approvals"`
	DepartmentDistribution []DepartmentCount `json:"department_distribution"`
}
