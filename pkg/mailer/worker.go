package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-member-portal/pkg/mailer/templates"
)

var ErrBadJob = errors.New("bad email job")

// Deliver decodes one queued job, renders it and hands it to s.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	subject, text, html, err := templates.RenderJob(job.Template, job.Subject, job.Text, job.HTML, job.Data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if subject == "" {
		return fmt.Errorf("%w: missing subject", ErrBadJob)
	}
	return s.Send(ctx, job.To, subject, text, html)
}
