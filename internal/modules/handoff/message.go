// README: Builds the booking payload, the operator chat message and the channel deep links.
package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"wardharides/internal/modules/pricing"
	"wardharides/internal/modules/session"
	"wardharides/internal/types"
)

// BuildPayload snapshots a session and the quote it was shown.
func BuildPayload(sess session.Session, q pricing.Quote) Payload {
	trip := sess.Trip
	p := Payload{
		Mode:         trip.Mode,
		TripType:     trip.TripType,
		Pickup:       sess.Pickup,
		Passengers:   trip.Passengers,
		SurgeApplied: q.SurgeAmount > 0,
		FinalPrice:   q.FinalPrice,
	}
	if trip.TripType == pricing.TripHangout {
		p.Package = trip.HangoutPackage
	}
	if trip.Mode == pricing.ModeSelfDrive && trip.TripType != pricing.TripHangout {
		p.DistanceKm = int(trip.DistanceKm)
	}
	if sess.Promo != nil && q.Discount > 0 {
		p.PromoCode = sess.Promo.Code
	}
	return p
}

func Message(p Payload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Student Booking*\nType: %s\nMode: %s\nPickup: %s\nPax: %d", p.Mode, p.TripType, p.Pickup, p.Passengers)
	if p.TripType == pricing.TripHangout {
		fmt.Fprintf(&b, "\nPkg: %s", p.Package)
	}
	if p.Mode == pricing.ModeSelfDrive && p.TripType != pricing.TripHangout {
		fmt.Fprintf(&b, "\nDist: %d km", p.DistanceKm)
	}
	if p.SurgeApplied {
		b.WriteString("\n(Surge Applied)")
	}
	if p.PromoCode != "" {
		fmt.Fprintf(&b, "\nPromo: %s", p.PromoCode)
	}
	fmt.Fprintf(&b, "\nEst. Price: %s", types.Rupees(p.FinalPrice))
	return b.String()
}

// WhatsAppLink opens a chat with number prefilled with text.
func WhatsAppLink(number, text string) string {
	return "https://wa.me/" + strings.TrimPrefix(strings.TrimSpace(number), "+") + "?text=" + escapeComponent(text)
}

// componentUnescape undoes QueryEscape where a URI component keeps characters
// literal: space is %20 and !'()* stay as they are.
var componentUnescape = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

func escapeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// Link picks the destination for a channel. The hosted form takes no prefill.
func Link(c Channel, whatsAppNumber, formURL, text string) (string, error) {
	switch c {
	case ChannelWhatsApp:
		return WhatsAppLink(whatsAppNumber, text), nil
	case ChannelForm:
		return formURL, nil
	}
	return "", ErrUnknownChannel
}
