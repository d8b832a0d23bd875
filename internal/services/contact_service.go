package services

import (
	"gorm.io/gorm"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/models"
)

// contactService stores contact form submissions.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

// SubmitMessage stores a contact form submission.
func (s *contactService) SubmitMessage(name, email, subject, message string) (*models.ContactMessage, error) {
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "all fields are required")
	}

	contact := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.db.Create(contact).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contact, nil
}
