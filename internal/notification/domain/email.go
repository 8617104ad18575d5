package domain

// EventEmailSend is the outbox event type the mailer worker consumes.
const EventEmailSend = "email/send"

// EmailSendPayload is the wire contract with the mailer: at-least-once
// delivery attempt, fire-and-forget relative to the checkout response.
type EmailSendPayload struct {
	RecipientEmail string `json:"recipientEmail"`
	Subject        string `json:"subject"`
	HTML           string `json:"html"`
}
