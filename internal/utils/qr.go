package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// QRDataURI encodes content as a PNG QR code of size x size pixels and
// returns it as a data URI that can be placed in an <img> src.
func QRDataURI(content string, size int) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("generate qr code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(size)); err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ReservationReference is the text encoded in a reservation's QR code.
func ReservationReference(reservationID, showtimeID int64) string {
	return fmt.Sprintf("RES-%06d-ST-%06d", reservationID, showtimeID)
}
