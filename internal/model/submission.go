package model

import "time"

// SubmissionStatus is the follow-up state of a contact-form submission.
// Any transition among the three values is allowed.
type SubmissionStatus string

const (
	StatusNew       SubmissionStatus = "new"
	StatusProcessed SubmissionStatus = "processed"
	StatusReplied   SubmissionStatus = "replied"
)

// SubmissionStatuses lists the valid statuses in display order.
var SubmissionStatuses = []SubmissionStatus{StatusNew, StatusProcessed, StatusReplied}

// Valid reports whether s is one of the enumerated statuses.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusNew, StatusProcessed, StatusReplied:
		return true
	}
	return false
}

// ContactSubmission is a persisted contact-form entry awaiting follow-up.
type ContactSubmission struct {
	ID           string           `json:"id" bson:"id"`
	Name         string           `json:"name" bson:"name"`
	Phone        string           `json:"phone" bson:"phone"`
	Email        string           `json:"email" bson:"email"`
	Organization string           `json:"organization,omitempty" bson:"organization,omitempty"`
	Comment      string           `json:"comment,omitempty" bson:"comment,omitempty"`
	Agree        bool             `json:"agree" bson:"agree"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	IPAddress    string           `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	Status       SubmissionStatus `json:"status" bson:"status"`
}

// SubmissionForm is the raw contact-form payload.
type SubmissionForm struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
	Comment      string `json:"comment"`
	Agree        bool   `json:"agree"`

	// ClientIP is filled from the request, never from the body.
	ClientIP string `json:"-"`
}

// SubmissionFilter narrows a submission query. Zero values match everything.
type SubmissionFilter struct {
	Status       SubmissionStatus
	CreatedSince time.Time
}

// SubmissionPage is one page of submissions, newest first.
type SubmissionPage struct {
	Submissions []*ContactSubmission `json:"submissions"`
	Total       int64                `json:"total"`
	Skip        int                  `json:"skip"`
	Limit       int                  `json:"limit"`
	HasMore     bool                 `json:"has_more"`
}
