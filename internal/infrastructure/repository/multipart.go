package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"github.com/registro/client/internal/domain/person"
	"github.com/registro/client/internal/domain/shared"
)

// encodePersonForm encodes a single person submission as multipart form data:
// six text fields plus an optional photo part.
func encodePersonForm(data person.FormData) (contentType string, body io.Reader, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"first_name":    data.FirstName,
		"last_name":     data.LastName,
		"birth_date":    data.BirthDate,
		"profession_id": strconv.FormatInt(data.ProfessionID, 10),
		"address":       data.Address,
		"phone":         data.Phone,
	}
	for _, name := range []string{"first_name", "last_name", "birth_date", "profession_id", "address", "phone"} {
		if err := w.WriteField(name, fields[name]); err != nil {
			return "", nil, shared.NewRequestError("could not encode form field " + name)
		}
	}

	if data.Photo != nil {
		if err := writePhotoPart(w, "photo", data.Photo); err != nil {
			return "", nil, err
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, shared.NewRequestError("could not finalize form data")
	}
	return w.FormDataContentType(), &buf, nil
}

// encodePersonBatch encodes a batch submission: one persons_data text field
// holding the JSON array of all non-binary fields, followed by one photos
// part per record that supplied one, in record order. The server re-associates
// each photo with its record by position.
func encodePersonBatch(batch []person.FormData) (contentType string, body io.Reader, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	records, err := json.Marshal(batch)
	if err != nil {
		return "", nil, shared.NewRequestError("could not encode batch records")
	}
	if err := w.WriteField("persons_data", string(records)); err != nil {
		return "", nil, shared.NewRequestError("could not encode batch records")
	}

	for _, data := range batch {
		if data.Photo == nil {
			continue
		}
		if err := writePhotoPart(w, "photos", data.Photo); err != nil {
			return "", nil, err
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, shared.NewRequestError("could not finalize form data")
	}
	return w.FormDataContentType(), &buf, nil
}

// writePhotoPart writes a binary part, honoring the attachment's content type
// when it carries one.
func writePhotoPart(w *multipart.Writer, field string, photo *person.Photo) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, photo.FileName))
	if photo.ContentType != "" {
		header.Set("Content-Type", photo.ContentType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return shared.NewRequestError("could not encode photo attachment")
	}
	if _, err := part.Write(photo.Data); err != nil {
		return shared.NewRequestError("could not encode photo attachment")
	}
	return nil
}
