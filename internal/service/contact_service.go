package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/portfolio/internal/model"
	"github.com/d60-Lab/portfolio/pkg/logger"
)

const (
	contactSentMessage   = "Email sent successfully!"
	contactFailedMessage = "Failed to send email. Please try again."
)

// Sender 发信接口，*mailer.Mailer 实现
type Sender interface {
	Send(ctx context.Context, fullName, senderEmail, message string) bool
}

// ContactService 联系表单转发邮件；发信失败不返回 error，只体现在状态里
type ContactService interface {
	Submit(ctx context.Context, fullName, email, message string) model.StatusResponse
}

type contactService struct {
	sender Sender
}

func NewContactService(sender Sender) ContactService {
	return &contactService{sender: sender}
}

func (s *contactService) Submit(ctx context.Context, fullName, email, message string) model.StatusResponse {
	logger.Info("contact form received", zap.String("fullname", fullName), zap.String("email", email))
	if s.sender.Send(ctx, fullName, email, message) {
		return model.StatusResponse{Status: model.StatusSuccess, Message: contactSentMessage}
	}
	logger.Warn("contact form email failed", zap.String("email", email))
	return model.StatusResponse{Status: model.StatusError, Message: contactFailedMessage}
}
