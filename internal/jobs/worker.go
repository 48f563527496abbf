package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/callboard-app/callboard/internal/db"
	"github.com/callboard-app/callboard/internal/mailer"
	"github.com/callboard-app/callboard/internal/reports"
)

// Worker consumes the email tasks. Returned errors make asynq retry with
// its default backoff.
type Worker struct {
	store   db.Store
	mail    mailer.Mailer
	siteURL string
}

func NewWorker(store db.Store, mail mailer.Mailer, siteURL string) *Worker {
	return &Worker{store: store, mail: mail, siteURL: siteURL}
}

func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeMagicLinkEmail, w.handleMagicLink)
	mux.HandleFunc(TypeScheduleEmail, w.handleScheduleEmail)
	mux.HandleFunc(TypeOutstandingEmail, w.handleOutstandingEmail)
}

func (w *Worker) handleMagicLink(ctx context.Context, t *asynq.Task) error {
	var p MagicLinkPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("bad %s payload: %w", t.Type(), err)
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nUse the link below to sign in and manage your shifts. The link works once and expires in 30 minutes.\n\n%s\n\nIf you didn't request this, you can ignore this email.\n",
		p.Name, p.Link)
	err := w.mail.Send(mailer.Message{
		To:      p.Email,
		Subject: "Your sign-in link",
		Body:    body,
	})
	if err != nil {
		log.Error().Err(err).Str("email", p.Email).Msg("magic link email failed")
		return err
	}
	log.Info().Str("email", p.Email).Msg("magic link email sent")
	return nil
}

func (w *Worker) handleScheduleEmail(ctx context.Context, t *asynq.Task) error {
	var p ScheduleEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("bad %s payload: %w", t.Type(), err)
	}

	participant, err := w.store.GetParticipantByID(p.ParticipantID)
	if err != nil {
		return err
	}
	doc, err := reports.VolunteerSchedule(w.store, p.ParticipantID, w.siteURL)
	if err != nil {
		return err
	}

	err = w.mail.Send(mailer.Message{
		To:      participant.Email,
		Subject: "Your volunteer schedule",
		Body:    fmt.Sprintf("Hi %s,\n\nYour current schedule is attached.\n\nManage your shifts at %s\n", participant.Name, w.siteURL),
		Attachments: []mailer.Attachment{
			{Filename: "schedule.pdf", Data: doc},
		},
	})
	if err != nil {
		log.Error().Err(err).Int("participant_id", p.ParticipantID).Msg("schedule email failed")
		return err
	}
	log.Info().Int("participant_id", p.ParticipantID).Msg("schedule email sent")
	return nil
}

func (w *Worker) handleOutstandingEmail(ctx context.Context, t *asynq.Task) error {
	var p OutstandingEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("bad %s payload: %w", t.Type(), err)
	}

	participant, err := w.store.GetParticipantByID(p.ParticipantID)
	if err != nil {
		return err
	}
	doc, err := reports.OutstandingForVolunteer(w.store, p.ParticipantID, p.Limit)
	if err != nil {
		return err
	}

	err = w.mail.Send(mailer.Message{
		To:      participant.Email,
		Subject: "Shifts that still need a volunteer",
		Body:    fmt.Sprintf("Hi %s,\n\nWe still have a few shifts without anyone assigned. The attached list only includes shifts that don't clash with yours.\n\nSign up at %s\n", participant.Name, w.siteURL),
		Attachments: []mailer.Attachment{
			{Filename: "outstanding-shifts.pdf", Data: doc},
		},
	})
	if err != nil {
		log.Error().Err(err).Int("participant_id", p.ParticipantID).Msg("outstanding shifts email failed")
		return err
	}
	log.Info().Int("participant_id", p.ParticipantID).Msg("outstanding shifts email sent")
	return nil
}
