package domain

import "context"

type Recipient struct {
	Email  string `json:"email" binding:"required,email"`
	Nom    string `json:"nom" binding:"required"`
	Prenom string `json:"prenom" binding:"required"`
}

type NotifyCollectionInput struct {
	Users []Recipient `json:"users" binding:"required,min=1,dive"`
}

type SendCVsInput struct {
	Recipients       []string `json:"recipients" binding:"required,min=1,dive,email"`
	Subject          string   `json:"subject"`
	Content          string   `json:"content"`
	SelectedProfiles []string `json:"selectedProfiles" binding:"required,min=1"`
	AttachmentTitle  string   `json:"attachmentTitle"`
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer delivers the outbound emails of the system.
type Mailer interface {
	SendActivation(ctx context.Context, to, prenom, confirmURL string) error
	SendUpdateReminder(ctx context.Context, r Recipient) error
	SendWithAttachment(ctx context.Context, to []string, subject, htmlBody string, att Attachment) error
}

// ObjectStore keeps binary blobs (images, archives) under string keys.
type ObjectStore interface {
	Enabled() bool
	Put(ctx context.Context, key, contentType string, data []byte) error
}

type NotificationUsecase interface {
	SendCVs(ctx context.Context, in SendCVsInput) (int, error)
	NotifyUpdate(ctx context.Context, r Recipient) error
	NotifyCollection(ctx context.Context, users []Recipient) error
}
