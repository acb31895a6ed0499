package model

import (
	"time"

	"github.com/google/uuid"
)

type CaseStatus string

const (
	CaseStatusOpen     CaseStatus = "open"
	CaseStatusInReview CaseStatus = "in_review"
	CaseStatusClosed   CaseStatus = "closed"
)

// Valid reports whether s is one of the known case statuses. Transitions
// between valid statuses are deliberately unrestricted.
func (s CaseStatus) Valid() bool {
	switch s {
	case CaseStatusOpen, CaseStatusInReview, CaseStatusClosed:
		return true
	}
	return false
}

// Attachment is file metadata attached to a case. Content is never stored,
// only the metadata the uploader reported.
type Attachment struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"type"`
	UploadedBy     string    `json:"uploaded_by"`
	UploadedByRole string    `json:"uploaded_by_role"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// Case is a patient-reported medical issue assigned to a doctor. Cases are
// never deleted.
type Case struct {
	ID          uuid.UUID    `json:"id"`
	PatientID   uuid.UUID    `json:"patient_id"`
	DoctorID    uuid.UUID    `json:"doctor_id"`
	Title       string       `json:"title"`
	Status      CaseStatus   `json:"status"`
	DoctorNotes string       `json:"doctor_notes,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type CreateCaseRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateCaseStatusRequest struct {
	Status CaseStatus `json:"status" binding:"required,casestatus"`
}

// Notes may legitimately be overwritten with an empty string, so no
// required tag here.
type UpdateCaseNotesRequest struct {
	Notes string `json:"notes"`
}

type AddAttachmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Size        int64  `json:"size" binding:"min=0"`
	ContentType string `json:"type"`
}
