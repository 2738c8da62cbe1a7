package payment

import (
	"encoding/json"
	"strconv"
)

// Ticket is the access pass found in a webhook response
type Ticket struct {
	QRImageURL string `json:"qrImageUrl,omitempty"`
	TicketID   string `json:"ticketId,omitempty"`
}

// Empty reports whether no ticket data was found
func (t Ticket) Empty() bool {
	return t.QRImageURL == "" && t.TicketID == ""
}

// HasData reports whether the webhook response carries a data object
func HasData(response json.RawMessage) bool {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(response, &body); err != nil {
		return false
	}

	var data map[string]json.RawMessage
	raw, ok := body["data"]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, &data) == nil && data != nil
}

// ExtractTicket reads the QR image and ticket id from a webhook response.
// Fields nested in data take precedence over top level ones.
func ExtractTicket(response json.RawMessage) Ticket {
	var body map[string]any
	if err := json.Unmarshal(response, &body); err != nil {
		return Ticket{}
	}

	data, _ := body["data"].(map[string]any)

	return Ticket{
		QRImageURL: firstString(
			field{data, "qr_image_url"},
			field{body, "qr_image_url"},
		),
		TicketID: firstString(
			field{data, "qr_code"},
			field{data, "ticket_id"},
			field{body, "qr_code"},
			field{body, "ticket_id"},
		),
	}
}

type field struct {
	src map[string]any
	key string
}

func firstString(fields ...field) string {
	for _, f := range fields {
		switch v := f.src[f.key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
