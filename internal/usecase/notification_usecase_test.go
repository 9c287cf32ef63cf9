package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-cv-backend/internal/domain"
	"go-cv-backend/internal/usecase"
)

func cvDetails() domain.ProfileDetails {
	years := 7
	return domain.ProfileDetails{
		Profile: domain.Profile{
			ID:                  "p1",
			CVLanguage:          domain.CVLanguageEN,
			ExperienceYears:     &years,
			Langues:             domain.Langues{FR: true, EN: true},
			Formations:          []domain.Formation{{Type: "Master", Libelle: "Informatique"}},
			FormationsEn:        []domain.Formation{{Type: "MSc", Libelle: "Computer Science"}},
			ExpSignificativesEn: []domain.ExpSignificative{{Description: "Led a data platform migration"}},
		},
		User:  domain.UserSummary{ID: "u1", Prenom: "Jean", Nom: "Dupont", Email: "jean@example.com"},
		Grade: &domain.NamedRef{ID: "g1", Name: "Confirmé", NameEn: "Senior"},
	}
}

func TestSendCVs(t *testing.T) {
	ctx := context.Background()
	in := domain.SendCVsInput{
		Recipients:       []string{"client@example.com"},
		SelectedProfiles: []string{"jean@example.com", "unknown@example.com"},
	}

	t.Run("Should zip one PDF per known profile and use the defaults", func(t *testing.T) {
		profiles, mailer, store := new(MockProfileRepo), new(MockMailer), new(MockStore)
		profiles.On("DetailsByEmails", ctx, in.SelectedProfiles).Return([]domain.ProfileDetails{cvDetails()}, nil)
		store.On("Enabled").Return(false)

		var sent domain.Attachment
		mailer.On("SendWithAttachment", ctx, []string{"client@example.com"}, "CVs des collaborateurs",
			"Veuillez trouver ci-joint les CVs demandés.", mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(4).(domain.Attachment) }).
			Return(nil)

		n, err := usecase.NewNotificationUsecase(profiles, mailer, store).SendCVs(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "CVs.zip", sent.Filename)
		assert.Equal(t, "application/zip", sent.ContentType)

		zr, err := zip.NewReader(bytes.NewReader(sent.Data), int64(len(sent.Data)))
		require.NoError(t, err)
		require.Len(t, zr.File, 1)
		assert.Equal(t, "Jean_Dupont_CV.pdf", zr.File[0].Name)
	})

	t.Run("Should archive the ZIP when storage is configured", func(t *testing.T) {
		profiles, mailer, store := new(MockProfileRepo), new(MockMailer), new(MockStore)
		profiles.On("DetailsByEmails", ctx, in.SelectedProfiles).Return([]domain.ProfileDetails{cvDetails()}, nil)
		mailer.On("SendWithAttachment", ctx, mock.Anything, "Profils", mock.Anything, mock.Anything).Return(nil)
		store.On("Enabled").Return(true)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return len(key) > len("cv-archives/Equipe_data_") && key[:len("cv-archives/Equipe_data_")] == "cv-archives/Equipe_data_"
		}), "application/zip", mock.Anything).Return(errors.New("bucket unavailable"))

		withTitle := in
		withTitle.Subject = "Profils"
		withTitle.AttachmentTitle = "Equipe data"
		n, err := usecase.NewNotificationUsecase(profiles, mailer, store).SendCVs(ctx, withTitle)
		require.NoError(t, err, "archive failures do not fail the mailing")
		assert.Equal(t, 1, n)
		store.AssertExpectations(t)
	})

	t.Run("Should report when no selected email has a profile", func(t *testing.T) {
		profiles := new(MockProfileRepo)
		profiles.On("DetailsByEmails", ctx, in.SelectedProfiles).Return(nil, nil)

		_, err := usecase.NewNotificationUsecase(profiles, new(MockMailer), nil).SendCVs(ctx, in)
		assert.Error(t, err)
	})
}

func TestNotifyCollection(t *testing.T) {
	ctx := context.Background()
	ok := domain.Recipient{Email: "a@example.com", Nom: "A", Prenom: "Anne"}
	bad := domain.Recipient{Email: "b@example.com", Nom: "B", Prenom: "Bob"}

	t.Run("Should validate every recipient before sending", func(t *testing.T) {
		mailer := new(MockMailer)
		err := usecase.NewNotificationUsecase(nil, mailer, nil).
			NotifyCollection(ctx, []domain.Recipient{ok, {Email: "c@example.com"}})
		assert.ErrorIs(t, err, domain.ErrValidation)
		mailer.AssertNotCalled(t, "SendUpdateReminder", mock.Anything, mock.Anything)
	})

	t.Run("Should keep sending after a failure and report it", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("SendUpdateReminder", ctx, bad).Return(errors.New("mailbox full"))
		mailer.On("SendUpdateReminder", ctx, ok).Return(nil)

		err := usecase.NewNotificationUsecase(nil, mailer, nil).NotifyCollection(ctx, []domain.Recipient{bad, ok})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "b@example.com")
		mailer.AssertNumberOfCalls(t, "SendUpdateReminder", 2)
	})
}
