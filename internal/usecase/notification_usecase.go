package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/apperror"
	"go-cv-backend/pkg/export"
	"go-cv-backend/pkg/htmlsanitize"
	"go-cv-backend/pkg/logger"
)

const (
	defaultCVSubject = "CVs des collaborateurs"
	defaultCVContent = "Veuillez trouver ci-joint les CVs demandés."
	defaultCVArchive = "CVs"
)

type notificationUsecase struct {
	profileRepo domain.ProfileRepository
	mailer      domain.Mailer
	store       domain.ObjectStore
}

func NewNotificationUsecase(profileRepo domain.ProfileRepository, mailer domain.Mailer, store domain.ObjectStore) domain.NotificationUsecase {
	return &notificationUsecase{profileRepo: profileRepo, mailer: mailer, store: store}
}

// SendCVs mails one ZIP holding a PDF per selected profile. Unknown emails are skipped.
// It returns the number of CVs attached.
func (u *notificationUsecase) SendCVs(ctx context.Context, in domain.SendCVsInput) (int, error) {
	recipients := compactIDs(in.Recipients)
	if len(recipients) == 0 {
		return 0, domain.NewValidationError("Au moins un destinataire est requis")
	}
	if len(compactIDs(in.SelectedProfiles)) == 0 {
		return 0, domain.NewValidationError("Au moins un profil doit être sélectionné")
	}

	details, err := u.profileRepo.DetailsByEmails(ctx, in.SelectedProfiles)
	if err != nil {
		return 0, err
	}
	if len(details) == 0 {
		return 0, apperror.NotFound("Aucun profil trouvé pour les emails sélectionnés")
	}

	files := make([]export.File, 0, len(details))
	for _, d := range details {
		pdf, err := export.RenderCV(cvFromDetails(d))
		if err != nil {
			return 0, err
		}
		files = append(files, export.File{Name: export.CVFileName(d.User.Prenom, d.User.Nom), Data: pdf})
	}
	archive, err := export.Zip(files)
	if err != nil {
		return 0, fmt.Errorf("zip CVs: %w", err)
	}

	title := strings.TrimSpace(in.AttachmentTitle)
	if title == "" {
		title = defaultCVArchive
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = defaultCVSubject
	}
	body := htmlsanitize.Sanitize(strings.TrimSpace(in.Content))
	if body == "" {
		body = defaultCVContent
	}

	att := domain.Attachment{Filename: title + ".zip", ContentType: "application/zip", Data: archive}
	if err := u.mailer.SendWithAttachment(ctx, recipients, subject, body, att); err != nil {
		return 0, fmt.Errorf("send CVs: %w", err)
	}
	u.archive(ctx, title, archive)
	return len(files), nil
}

// archive keeps a copy of the sent ZIP when object storage is configured.
func (u *notificationUsecase) archive(ctx context.Context, title string, data []byte) {
	if u.store == nil || !u.store.Enabled() {
		return
	}
	key := fmt.Sprintf("cv-archives/%s_%s.zip", archiveSlug(title), uuid.NewString())
	if err := u.store.Put(ctx, key, "application/zip", data); err != nil {
		logger.Log.Warn("CV archive upload failed", "key", key, "error", err)
	}
}

func archiveSlug(title string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, title)
	if slug == "" {
		return defaultCVArchive
	}
	return slug
}

func cvFromDetails(d domain.ProfileDetails) export.CV {
	english := d.CVLanguage == domain.CVLanguageEN
	formations, experiences := d.Formations, d.ExpSignificatives
	if english {
		formations, experiences = d.FormationsEn, d.ExpSignificativesEn
	}

	cv := export.CV{
		Prenom:          d.User.Prenom,
		Nom:             d.User.Nom,
		Email:           d.User.Email,
		English:         english,
		ExperienceYears: d.ExperienceYears,
		Description:     htmlsanitize.PlainText(valueOf(d.Description)),
		Grade:           refName(d.Grade, english),
		Metier:          refName(d.Metier, english),
		Poste:           refName(d.Poste, english),
		Langues:         d.Langues.Spoken(),
	}
	for _, f := range formations {
		if strings.TrimSpace(f.Type) == "" && strings.TrimSpace(f.Libelle) == "" {
			continue
		}
		cv.Formations = append(cv.Formations, export.CVFormation{Type: f.Type, Libelle: f.Libelle})
	}
	for _, e := range experiences {
		if desc := htmlsanitize.PlainText(e.Description); desc != "" {
			cv.Experiences = append(cv.Experiences, desc)
		}
	}
	return cv
}

func refName(ref *domain.NamedRef, english bool) string {
	if ref == nil {
		return ""
	}
	if english && ref.NameEn != "" {
		return ref.NameEn
	}
	return ref.Name
}

func checkRecipient(r domain.Recipient) error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Nom) == "" || strings.TrimSpace(r.Prenom) == "" {
		return domain.NewValidationError("email, nom et prenom sont obligatoires")
	}
	return nil
}

func (u *notificationUsecase) NotifyUpdate(ctx context.Context, r domain.Recipient) error {
	if err := checkRecipient(r); err != nil {
		return err
	}
	return u.mailer.SendUpdateReminder(ctx, r)
}

// NotifyCollection reminds every user and reports all delivery failures together.
func (u *notificationUsecase) NotifyCollection(ctx context.Context, users []domain.Recipient) error {
	if len(users) == 0 {
		return domain.NewValidationError("Aucun destinataire")
	}
	for _, r := range users {
		if err := checkRecipient(r); err != nil {
			return err
		}
	}
	var errs []error
	for _, r := range users {
		if err := u.mailer.SendUpdateReminder(ctx, r); err != nil {
			logger.Log.Error("update reminder failed", "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", r.Email, err))
		}
	}
	return errors.Join(errs...)
}
