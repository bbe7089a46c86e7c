package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendVerificationDecision(ctx context.Context, toEmail, fullName, propertyTitle, decision string) error {
	args := m.Called(ctx, toEmail, fullName, propertyTitle, decision)
	return args.Error(0)
}

func (m *EmailService) SendApplicationReceived(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}
