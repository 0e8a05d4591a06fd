package models

// Response shapes referenced by the swagger annotations on the handlers.

type AuthSuccessResponse struct {
	Message string   `json:"message" example:"Login successful"`
	Token   string   `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	User    UserView `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Visit request submitted"`
}

type VisitResponse struct {
	Message string `json:"message" example:"Checked in successfully"`
	Visit   Visit  `json:"visit"`
}

type VisitListResponse struct {
	Visits []VisitWithVisitor `json:"visits"`
	Total  int                `json:"total" example:"10"`
}

type PreApprovalResponse struct {
	Message     string      `json:"message" example:"Pre-approval created"`
	PreApproval PreApproval `json:"pre_approval"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}
