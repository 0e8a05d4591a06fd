// Package credential issues visit passcodes and their QR code images.
package credential

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	qrcode "github.com/skip2/go-qrcode"

	"visitor-management/pkg/apperror"
)

const (
	// Alphabet is the set passcode characters are drawn from.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	DefaultLength = 6
	qrSize        = 256

	// largest multiple of len(Alphabet) that fits in a byte; bytes at or above it are rejected
	sampleLimit = 256 - 256%len(Alphabet)
)

// Credential is a passcode plus its scannable rendering.
type Credential struct {
	Passcode string
	QRCode   string
}

type Issuer struct {
	Length int
}

func NewIssuer(length int) *Issuer {
	if length <= 0 {
		length = DefaultLength
	}
	return &Issuer{Length: length}
}

// Passcode returns Length characters drawn uniformly from Alphabet.
func (i *Issuer) Passcode() string {
	out := make([]byte, 0, i.Length)
	buf := make([]byte, i.Length*2)
	for len(out) < i.Length {
		// crypto/rand.Read never returns an error on supported platforms.
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if int(b) >= sampleLimit {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == i.Length {
				break
			}
		}
	}
	return string(out)
}

// Encode renders content as a PNG QR code data URI.
func (i *Issuer) Encode(content string) (string, error) {
	if content == "" {
		return "", apperror.Encoding("failed to generate QR code", errors.New("empty content"))
	}

	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		return "", apperror.Encoding("failed to generate QR code", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Issue generates a fresh passcode and encodes it.
func (i *Issuer) Issue() (Credential, error) {
	passcode := i.Passcode()
	qr, err := i.Encode(passcode)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Passcode: passcode, QRCode: qr}, nil
}
