package email

import (
	"context"
	"fmt"

	"github.com/zvrva/stayfinder/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s: booking %s (%s) for listing %q, %s -> %s, total %.2f\n",
		event.GuestEmail, event.ReferenceCode, event.Type, event.ListingTitle,
		event.CheckIn.Format("2006-01-02"), event.CheckOut.Format("2006-01-02"), event.TotalPrice)
	return nil
}
