// Package offerclient submits a filled offer form to the backend the
// same way the embedded browser form does: validated, priced and
// encoded as multipart/form-data.
package offerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"sync/atomic"
	"time"

	"offer-form-backend/internal/domain"
	"offer-form-backend/internal/pricing"
)

// ErrSubmissionInFlight is returned when Submit is called while an
// earlier submission is still running. Mirrors the form's disabled
// submit button.
var ErrSubmissionInFlight = errors.New("offerclient: submission already in flight")

// Client submits offer forms to the backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
	calc       pricing.Calculator
	inFlight   atomic.Bool
}

// NewClient creates a client for the given /send-offer endpoint URL.
func NewClient(endpoint string, calc pricing.Calculator) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		calc:       calc,
	}
}

// Submit validates the form, encodes it and posts it to the backend.
// Only one submission may run at a time.
func (c *Client) Submit(ctx context.Context, form *domain.OfferForm) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	if err := pricing.Validate(form); err != nil {
		return err
	}

	body, contentType, err := EncodeForm(form, c.calc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("offerclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("offerclient: send request: %w", err)
	}
	defer resp.Body.Close()

	var apiResp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&apiResp)
	if decodeErr == nil && apiResp.Success {
		return nil
	}
	if decodeErr == nil && apiResp.Message != "" {
		return errors.New(apiResp.Message)
	}
	return fmt.Errorf("Fehler beim Senden (HTTP %d)", resp.StatusCode)
}

// EncodeForm writes the form as the multipart body the backend expects.
// Numeric fields are normalized: decimal commas become dots and the
// amount is clamped, so the server sees canonical values regardless of
// what the user typed.
func EncodeForm(form *domain.OfferForm, calc pricing.Calculator) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"firstName":       form.FirstName,
		"lastName":        form.LastName,
		"email":           form.Email,
		"address[street]": form.Address.Street,
		"address[zip]":    form.Address.Zip,
		"address[city]":   form.Address.City,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("offerclient: encode %s: %w", key, err)
		}
	}

	for i, mat := range form.Mats {
		_, price := calc.ComputeItem(mat)
		group := map[string]string{
			fmt.Sprintf("doorMats[%d][length]", i):         formatDecimal(mat.Length),
			fmt.Sprintf("doorMats[%d][width]", i):          formatDecimal(mat.Width),
			fmt.Sprintf("doorMats[%d][shape]", i):          mat.Shape,
			fmt.Sprintf("doorMats[%d][isSpecialShape]", i): strconv.FormatBool(mat.IsSpecialShape),
			fmt.Sprintf("doorMats[%d][amount]", i):         strconv.Itoa(pricing.ParseAmount(mat.Amount)),
			fmt.Sprintf("doorMats[%d][price]", i):          strconv.FormatFloat(price, 'f', 2, 64),
		}
		for key, value := range group {
			if err := writer.WriteField(key, value); err != nil {
				return nil, "", fmt.Errorf("offerclient: encode %s: %w", key, err)
			}
		}

		if mat.Logo != nil {
			if err := writeLogoPart(writer, i, mat.Logo); err != nil {
				return nil, "", err
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("offerclient: finalize body: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func writeLogoPart(writer *multipart.Writer, index int, logo *domain.LogoFile) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fmt.Sprintf("doorMats_%d_logo", index), logo.Name))
	header.Set("Content-Type", http.DetectContentType(logo.Content))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("offerclient: create logo part: %w", err)
	}
	if _, err := part.Write(logo.Content); err != nil {
		return fmt.Errorf("offerclient: write logo part: %w", err)
	}
	return nil
}

// formatDecimal writes a dimension field in canonical dot notation.
func formatDecimal(s string) string {
	return strconv.FormatFloat(pricing.ParseDecimal(s), 'f', -1, 64)
}
