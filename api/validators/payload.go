package validators

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	pkgerrors "github.com/sparklerlabs/fireworks-shop-backend/pkg/errors"
)

// maxLegacyPayload bounds the form body; invoice uploads arrive base64-inflated.
const maxLegacyPayload = 16 << 20

// DecodeLegacyPayload unwraps the spreadsheet-era POST contract: a form
// field `payload` holding url-encoded JSON with an `action` discriminator.
// A plain JSON body with the same shape is accepted too.
func DecodeLegacyPayload(r *http.Request) (string, json.RawMessage, error) {
	raw, err := readLegacyBody(r)
	if err != nil {
		return "", nil, err
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload json")
	}
	if envelope.Action == "" {
		return "", nil, pkgerrors.New(pkgerrors.CodeValidation, "missing action")
	}
	return envelope.Action, raw, nil
}

func readLegacyBody(r *http.Request) (json.RawMessage, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxLegacyPayload)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading request body")
		}
		return body, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parsing form body")
	}
	payload := r.PostFormValue("payload")
	if payload == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing payload")
	}
	return json.RawMessage(payload), nil
}

// DecodeAction unmarshals the action-specific fields out of the envelope
// and applies the struct tags.
func DecodeAction(raw json.RawMessage, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload").WithDetails(map[string]any{"error": err.Error()})
	}
	return ValidateStruct(dest)
}
