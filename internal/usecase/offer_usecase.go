package usecase

import (
	"context"
	"errors"
	"net/http"

	"offer-form-backend/internal/domain"
	"offer-form-backend/pkg/apperror"
	"offer-form-backend/pkg/logger"
	"offer-form-backend/pkg/sanitize"

	"github.com/go-playground/validator/v10"
)

type offerUsecase struct {
	mailer      domain.Mailer
	logos       domain.LogoStore
	validate    *validator.Validate
	pricePerSqm float64
	surcharge   float64
}

// NewOfferUsecase creates the offer submission usecase.
func NewOfferUsecase(mailer domain.Mailer, logos domain.LogoStore, validate *validator.Validate, pricePerSqm, surcharge float64) domain.OfferUsecase {
	return &offerUsecase{
		mailer:      mailer,
		logos:       logos,
		validate:    validate,
		pricePerSqm: pricePerSqm,
		surcharge:   surcharge,
	}
}

// SubmitOffer sanitizes the quote, validates it, stores logo uploads and
// dispatches the offer email. Client-sent prices are passed through for
// display only.
func (u *offerUsecase) SubmitOffer(ctx context.Context, q *domain.Quote) error {
	u.sanitizeQuote(q)

	if !sanitize.IsEmail(q.Customer.Email) {
		return apperror.BadRequest("Bitte gültige E-Mail eingeben.")
	}
	if len(q.Items) == 0 {
		return apperror.BadRequest("Mindestens eine Matte angeben.")
	}
	if err := u.validate.Struct(q); err != nil {
		return apperror.New(http.StatusBadRequest, "Bitte alle Pflichtfelder korrekt ausfüllen.", err)
	}

	data := &domain.QuoteEmailData{
		FirstName:        q.Customer.FirstName,
		LastName:         q.Customer.LastName,
		Email:            q.Customer.Email,
		Street:           q.Address.Street,
		Zip:              q.Address.Zip,
		City:             q.Address.City,
		PricePerSqm:      u.pricePerSqm,
		SurchargePercent: u.surcharge * 100,
	}

	var attachments []string
	for i, item := range q.Items {
		row := domain.QuoteEmailItem{
			Length:         item.Length,
			Width:          item.Width,
			Area:           (item.Length * item.Width) / 10000,
			Shape:          item.Shape,
			IsSpecialShape: item.IsSpecialShape,
			Amount:         item.Amount,
			Price:          item.Price,
		}

		if item.Logo != nil {
			stored, err := u.logos.Store(ctx, item.Logo)
			if err != nil {
				return mapLogoError(i, err)
			}
			row.LogoURL = stored.URL
			attachments = append(attachments, stored.Path)
		}

		data.Total += item.Price
		data.Items = append(data.Items, row)
	}

	if err := u.mailer.SendQuoteEmail(ctx, data, attachments); err != nil {
		logger.Log.Error("failed to send offer email",
			"error", err.Error(),
			"customer_email", q.Customer.Email,
		)
		return apperror.New(http.StatusInternalServerError, "E-Mail konnte nicht gesendet werden. Bitte später erneut versuchen.", err)
	}

	logger.Log.Info("offer submitted",
		"customer_email", q.Customer.Email,
		"items", len(q.Items),
		"total", data.Total,
	)
	return nil
}

// sanitizeQuote strips markup and control characters from all free-text
// fields before they reach validation or the email template.
func (u *offerUsecase) sanitizeQuote(q *domain.Quote) {
	q.Customer.FirstName = sanitize.Text(q.Customer.FirstName)
	q.Customer.LastName = sanitize.Text(q.Customer.LastName)
	q.Customer.Email = sanitize.Text(q.Customer.Email)
	q.Address.Street = sanitize.Text(q.Address.Street)
	q.Address.Zip = sanitize.Text(q.Address.Zip)
	q.Address.City = sanitize.Text(q.Address.City)
	for i := range q.Items {
		q.Items[i].Shape = sanitize.Text(q.Items[i].Shape)
	}
}

func mapLogoError(index int, err error) error {
	switch {
	case errors.Is(err, domain.ErrLogoTooLarge):
		return apperror.BadRequest("Maximale Dateigröße: 5MB")
	case errors.Is(err, domain.ErrLogoTypeNotAllowed):
		return apperror.BadRequest("Nur JPG und PNG erlaubt")
	case errors.Is(err, domain.ErrLogoUnreadable):
		return apperror.BadRequest("Logo-Datei konnte nicht gelesen werden.")
	default:
		logger.Log.Error("failed to store logo upload",
			"error", err.Error(),
			"item", index,
		)
		return apperror.New(http.StatusInternalServerError, "Logo konnte nicht verarbeitet werden.", err)
	}
}
