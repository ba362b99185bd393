// Package notify builds deep links for the external messaging channel. The
// core only constructs URL strings; delivery is handed off to the messaging
// app and is out of scope.
package notify

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNoPhone is returned when the customer has no phone number on record.
var ErrNoPhone = errors.New("customer has no phone number")

// WhatsAppLink builds a wa.me deep link for the given phone with a prefilled
// message. The phone is normalized to digits only; a leading plus is allowed.
func WhatsAppLink(phone, message string) (string, error) {
	digits := normalizePhone(phone)
	if digits == "" {
		return "", ErrNoPhone
	}
	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link, nil
}

// ReviewMessage is the prefilled text sent when a wash is finished, inviting
// the customer to leave a review.
func ReviewMessage(customerName, reviewLink string) string {
	greeting := "Hi"
	if customerName != "" {
		greeting = fmt.Sprintf("Hi %s", customerName)
	}
	msg := fmt.Sprintf("%s! Your car is ready for pickup. Thanks for washing with us!", greeting)
	if reviewLink != "" {
		msg += fmt.Sprintf(" We'd love a review: %s", reviewLink)
	}
	return msg
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
