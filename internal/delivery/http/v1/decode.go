package v1

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"offer-form-backend/internal/domain"
)

// decodeQuote parses the submitted multipart form into a Quote. Mat
// groups are read as doorMats[i][field] with a matching optional file
// part named doorMats_i_logo. Decoding is strict: a malformed numeric
// field yields a FieldError instead of a silent default.
func decodeQuote(form *multipart.Form) (*domain.Quote, error) {
	q := &domain.Quote{
		Customer: domain.Customer{
			FirstName: formValue(form, "firstName"),
			LastName:  formValue(form, "lastName"),
			Email:     formValue(form, "email"),
		},
		Address: domain.Address{
			Street: formValue(form, "address[street]"),
			Zip:    formValue(form, "address[zip]"),
			City:   formValue(form, "address[city]"),
		},
	}

	for i := 0; ; i++ {
		prefix := fmt.Sprintf("doorMats[%d]", i)
		if !hasValue(form, prefix+"[length]") {
			break
		}

		item, err := decodeMatItem(form, prefix, i)
		if err != nil {
			return nil, err
		}
		q.Items = append(q.Items, item)
	}

	return q, nil
}

func decodeMatItem(form *multipart.Form, prefix string, index int) (domain.MatItem, error) {
	var item domain.MatItem
	var err error

	if item.Length, err = parseFloatField(form, prefix+"[length]", "doorMats", index, "length"); err != nil {
		return item, err
	}
	if item.Width, err = parseFloatField(form, prefix+"[width]", "doorMats", index, "width"); err != nil {
		return item, err
	}
	if item.Price, err = parseFloatField(form, prefix+"[price]", "doorMats", index, "price"); err != nil {
		return item, err
	}

	item.Shape = formValue(form, prefix+"[shape]")

	if raw := formValue(form, prefix+"[isSpecialShape]"); raw != "" {
		item.IsSpecialShape, err = strconv.ParseBool(raw)
		if err != nil {
			return item, &domain.FieldError{Section: "doorMats", Index: index, Field: "isSpecialShape", Err: err}
		}
	}

	rawAmount := formValue(form, prefix+"[amount]")
	item.Amount, err = strconv.Atoi(rawAmount)
	if err != nil {
		return item, &domain.FieldError{Section: "doorMats", Index: index, Field: "amount", Err: err}
	}

	if files := form.File[fmt.Sprintf("doorMats_%d_logo", index)]; len(files) > 0 {
		item.Logo = files[0]
	}

	return item, nil
}

func parseFloatField(form *multipart.Form, key, section string, index int, field string) (float64, error) {
	raw := formValue(form, key)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.FieldError{Section: section, Index: index, Field: field, Err: err}
	}
	return v, nil
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func hasValue(form *multipart.Form, key string) bool {
	return len(form.Value[key]) > 0
}
