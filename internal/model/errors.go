package model

import "errors"

// Model parsing and validation errors.
var (
	// ErrUnknownRegion is returned when a region name cannot be parsed.
	ErrUnknownRegion = errors.New("unknown region: expected overseas or chinese")

	// ErrUnknownLoginKind is returned when a login kind name cannot be parsed.
	ErrUnknownLoginKind = errors.New("unknown login kind")

	// ErrUnsupportedLang is returned when a language tag does not match any
	// language accepted by the HoYoLAB APIs.
	ErrUnsupportedLang = errors.New("unsupported language")

	// ErrMalformedHeader is returned when a challenge header is not the JSON
	// object the server is expected to send.
	ErrMalformedHeader = errors.New("malformed challenge header")

	// ErrMalformedEnvelope is returned when a response body is not a
	// {retcode, message, data} envelope.
	ErrMalformedEnvelope = errors.New("malformed response envelope")

	// ErrInvalidProof is returned when a proof cannot be rendered into a header.
	ErrInvalidProof = errors.New("invalid challenge proof")

	// ErrProofConsumed is returned when a proof is attached to a second request.
	ErrProofConsumed = errors.New("challenge proof already consumed")

	// ErrUnknownQRCodeStatus is returned for QR login states this client does not know.
	ErrUnknownQRCodeStatus = errors.New("unknown qrcode status")
)
