package model

import "fmt"

// QRCode is a created QR login: the ticket to poll and the URL to render.
type QRCode struct {
	Ticket string `json:"ticket"`
	URL    string `json:"url"`
}

// QRCodeStatus is the state of a QR login as reported by the server.
type QRCodeStatus string

const (
	// QRCodeCreated means the code has not been scanned yet.
	QRCodeCreated QRCodeStatus = "Created"
	// QRCodeScanned means the code was scanned and awaits confirmation.
	QRCodeScanned QRCodeStatus = "Scanned"
	// QRCodeConfirmed means the login was confirmed and cookies were issued.
	QRCodeConfirmed QRCodeStatus = "Confirmed"
)

// ParseQRCodeStatus validates a status string from the server.
func ParseQRCodeStatus(s string) (QRCodeStatus, error) {
	switch st := QRCodeStatus(s); st {
	case QRCodeCreated, QRCodeScanned, QRCodeConfirmed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQRCodeStatus, s)
	}
}
