package checkout

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// MaxProofSize is the ceiling for an uploaded payment-proof image.
const MaxProofSize = 5 * 1024 * 1024 // 5MB limit

// allowedProofTypes matches the storefront's file picker: png, jpeg, gif.
var allowedProofTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

var (
	// ErrProofMissing is returned when no file accompanies the submission.
	ErrProofMissing = errors.New("checkout: payment proof is required")

	// ErrProofTooLarge is returned before anything is read into the store.
	ErrProofTooLarge = fmt.Errorf("checkout: payment proof exceeds the %dMB limit", MaxProofSize/(1024*1024))

	// ErrProofBadType is returned for non-image uploads.
	ErrProofBadType = errors.New("checkout: payment proof must be a PNG, JPEG or GIF image")
)

// ProofUpload is the raw file the shopper submitted.
type ProofUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Validate enforces the size ceiling and the image MIME allow-list before
// any store call happens.
func (p ProofUpload) Validate() error {
	if len(p.Data) == 0 {
		return ErrProofMissing
	}
	if len(p.Data) > MaxProofSize {
		return ErrProofTooLarge
	}
	if !allowedProofTypes[p.ContentType] {
		return ErrProofBadType
	}
	return nil
}

// DataURL encodes the proof as a base64 data URL, the inline form the order
// record stores instead of an object-store reference.
func (p ProofUpload) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", p.ContentType, base64.StdEncoding.EncodeToString(p.Data))
}
