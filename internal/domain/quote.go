package domain

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
)

// Customer holds the personal data of the person requesting an offer.
type Customer struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
}

// Address is the delivery address for the offer.
type Address struct {
	Street string `validate:"required"`
	Zip    string `validate:"required"`
	City   string `validate:"required"`
}

// MatItem is one decoded door mat position of a submitted quote.
// Length and width are centimeters. Price is the client-computed line
// price; it is used for display only and never for billing.
type MatItem struct {
	Length         float64               `validate:"gt=0"`
	Width          float64               `validate:"gt=0"`
	Shape          string                `validate:"-"`
	IsSpecialShape bool                  `validate:"-"`
	Amount         int                   `validate:"gte=1"`
	Price          float64               `validate:"gte=0"`
	Logo           *multipart.FileHeader `validate:"-"`
}

// Quote is a fully decoded offer request as received by the server.
type Quote struct {
	Customer Customer  `validate:"required"`
	Address  Address   `validate:"required"`
	Items    []MatItem `validate:"min=1,dive"`
}

// OfferForm is the client-side state of the quote form. Numeric fields
// stay raw strings until pricing coerces them, so the form keeps working
// while the user is still typing.
type OfferForm struct {
	FirstName string
	LastName  string
	Email     string
	Address   Address
	Mats      []MatInput
}

// MatInput is one mat as entered into the form.
type MatInput struct {
	Length         string
	Width          string
	Shape          string
	IsSpecialShape bool
	Amount         string
	Logo           *LogoFile
}

// LogoFile is an optional logo image attached to a mat.
type LogoFile struct {
	Name    string
	Content []byte
}

// NewMatInput returns a mat row with the form defaults.
func NewMatInput() MatInput {
	return MatInput{Shape: "Rechteck", Amount: "1"}
}

// StoredLogo is the result of persisting an uploaded logo.
type StoredLogo struct {
	URL  string // publicly reachable, embedded into the email
	Path string // local path, attached to the email
}

// QuoteEmailItem is one rendered row of the quote email table.
type QuoteEmailItem struct {
	Length         float64
	Width          float64
	Area           float64
	Shape          string
	IsSpecialShape bool
	Amount         int
	Price          float64
	LogoURL        string
}

// QuoteEmailData is everything the mail template needs.
type QuoteEmailData struct {
	FirstName        string
	LastName         string
	Email            string
	Street           string
	Zip              string
	City             string
	Items            []QuoteEmailItem
	Total            float64
	PricePerSqm      float64
	SurchargePercent float64
}

// OfferUsecase defines the server-side offer submission pipeline.
type OfferUsecase interface {
	// SubmitOffer sanitizes and validates the quote, stores logo uploads
	// and dispatches the rendered offer email.
	SubmitOffer(ctx context.Context, q *Quote) error
}

// Mailer renders and dispatches the quote email to the configured
// fixed recipient.
type Mailer interface {
	SendQuoteEmail(ctx context.Context, data *QuoteEmailData, attachments []string) error
}

// LogoStore persists an uploaded logo and returns its public URL and
// local path, or an error for a disallowed type or size.
type LogoStore interface {
	Store(ctx context.Context, fh *multipart.FileHeader) (*StoredLogo, error)
}

// Upload rejection reasons, surfaced as 400 to the client.
var (
	ErrLogoTooLarge       = errors.New("logo exceeds maximum file size")
	ErrLogoTypeNotAllowed = errors.New("logo MIME type not allowed")
	ErrLogoUnreadable     = errors.New("logo image cannot be decoded")
)

// FieldError reports a single malformed field group in a submitted
// multipart body. Index is the 0-based mat index, or -1 for top-level
// fields.
type FieldError struct {
	Section string
	Index   int
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s[%s]: %v", e.Section, e.Field, e.Err)
	}
	return fmt.Sprintf("%s[%d][%s]: %v", e.Section, e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
