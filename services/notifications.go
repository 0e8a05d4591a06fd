package services

import (
	"context"
	"fmt"
	"strings"

	"visitor-management/models"
	"visitor-management/pkg/notifier"
)

func (rt Runtime) notify(ctx context.Context, msg notifier.Message) {
	rt.Notifier.Notify(ctx, msg)
}

func (rt Runtime) visitRequestedMessage(v *models.Visit) notifier.Message {
	return notifier.Message{
		To:      v.Host.Email,
		Subject: "New Visit Request",
		Body: fmt.Sprintf("You have a new visit request from %s for %s.\nPurpose: %s",
			v.Visitor.Name, rt.formatTime(v.VisitDate), v.Purpose),
	}
}

func (rt Runtime) visitDecidedMessage(v *models.Visit) notifier.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Your visit request for %s has been %s.", rt.formatTime(v.VisitDate), v.Status)
	if v.Status == models.VisitApproved {
		fmt.Fprintf(&b, "\nYour passcode is: %s", v.Passcode)
	}
	if v.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", v.Notes)
	}

	verdict := "Approved"
	if v.Status == models.VisitRejected {
		verdict = "Rejected"
	}
	return notifier.Message{
		To:      v.Visitor.Email,
		Subject: "Visit Request " + verdict,
		Body:    b.String(),
	}
}

func (rt Runtime) visitorArrivalMessage(v *models.Visit) notifier.Message {
	if v.Status == models.VisitCheckedOut {
		return notifier.Message{
			To:      v.Host.Email,
			Subject: "Visitor Check-out Notification",
			Body:    fmt.Sprintf("%s has checked out at %s.", v.Visitor.Name, rt.formatTime(*v.CheckOutTime)),
		}
	}
	return notifier.Message{
		To:      v.Host.Email,
		Subject: "Visitor Check-in Notification",
		Body:    fmt.Sprintf("%s has checked in at %s.", v.Visitor.Name, rt.formatTime(*v.CheckInTime)),
	}
}

func (rt Runtime) preApprovalIssuedMessage(p *models.PreApproval) notifier.Message {
	host := p.Host.Name
	if p.Host.Department != "" {
		host += ", " + p.Host.Department
	}
	return notifier.Message{
		To:      p.Visitor.Email,
		Subject: "Pre-approved Visit",
		Body: fmt.Sprintf("You have been pre-approved for a visit from %s to %s.\nPurpose: %s\nHost: %s\nYour passcode is: %s\nPlease show this code or the QR code upon arrival.",
			rt.formatTime(p.ValidFrom), rt.formatTime(p.ValidUntil), p.Purpose, host, p.Passcode),
	}
}

func (rt Runtime) preApprovalCancelledMessage(p *models.PreApproval) notifier.Message {
	return notifier.Message{
		To:      p.Visitor.Email,
		Subject: "Pre-approval Cancelled",
		Body: fmt.Sprintf("Your pre-approved visit for %s to %s has been cancelled.\nPlease contact your host for more information.",
			rt.formatTime(p.ValidFrom), rt.formatTime(p.ValidUntil)),
	}
}
