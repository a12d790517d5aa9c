package models

import "errors"

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Book(booking *Booking) error
	Decline(booking *Booking) error
	Cancel(booking *Booking) error
}

// PendingState trạng thái chờ duyệt
type PendingState struct{}

func (s *PendingState) Book(booking *Booking) error {
	booking.Status = BookingStatusBooked
	return nil
}

func (s *PendingState) Decline(booking *Booking) error {
	booking.Status = BookingStatusDeclined
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

// BookedState trạng thái đã duyệt
type BookedState struct{}

func (s *BookedState) Book(booking *Booking) error {
	return errors.New("booking already booked")
}

func (s *BookedState) Decline(booking *Booking) error {
	return errors.New("cannot decline booked booking")
}

func (s *BookedState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Book(booking *Booking) error {
	return errors.New("cannot book cancelled booking")
}

func (s *CancelledState) Decline(booking *Booking) error {
	return errors.New("cannot decline cancelled booking")
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return errors.New("booking already cancelled")
}

// DeclinedState trạng thái đã từ chối
type DeclinedState struct{}

func (s *DeclinedState) Book(booking *Booking) error {
	return errors.New("cannot book declined booking")
}

func (s *DeclinedState) Decline(booking *Booking) error {
	return errors.New("booking already declined")
}

func (s *DeclinedState) Cancel(booking *Booking) error {
	return errors.New("cannot cancel declined booking")
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status string) BookingState {
	switch status {
	case BookingStatusPending:
		return &PendingState{}
	case BookingStatusBooked:
		return &BookedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	case BookingStatusDeclined:
		return &DeclinedState{}
	default:
		return &PendingState{}
	}
}
