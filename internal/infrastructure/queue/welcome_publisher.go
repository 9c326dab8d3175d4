package queue

import (
	"context"

	"github.com/oksasatya/go-member-portal/internal/application"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/pkg/mailer"
	"github.com/oksasatya/go-member-portal/pkg/mailer/templates"
)

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomePublisher queues a welcome email job for the email worker.
type WelcomePublisher struct {
	Pub     JSONPublisher
	AppName string
}

func NewWelcomePublisher(pub JSONPublisher, appName string) *WelcomePublisher {
	return &WelcomePublisher{Pub: pub, AppName: appName}
}

var _ application.WelcomeNotifier = (*WelcomePublisher)(nil)

func (p *WelcomePublisher) Welcome(ctx context.Context, u *entity.User) error {
	data := templates.NewWelcomeData(p.AppName, u.Name, u.Email)
	if !u.CreatedAt.IsZero() {
		templates.WithTime(u.CreatedAt)(&data)
	}
	return p.Pub.PublishJSON(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data:     templates.ToMap(data),
	})
}
