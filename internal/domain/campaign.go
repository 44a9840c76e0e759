package domain

// Sender identity is fixed for this deployment; only SMTP transport
// settings come from config.
const (
	FromName  = "Miami Master Flooring"
	FromEmail = "info@miamimasterflooring.com"
)

// CampaignMessage is the stateless template rendered once per recipient.
// All HTML is operator-supplied and trusted verbatim.
type CampaignMessage struct {
	Subject       string `json:"subject"`
	GreetingHTML  string `json:"greeting_html"`
	BodyHTML      string `json:"body_html"`
	SignatureHTML string `json:"signature_html"`
}
