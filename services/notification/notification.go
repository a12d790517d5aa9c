package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

// MelodyService broadcast thông báo realtime cho dashboard
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// MessageBuilder dựng thông báo cho một sự kiện đặt chỗ
type MessageBuilder struct {
	bookingID  uint
	propertyID uint
	event      string
}

func NewMessageBuilder(bookingID, propertyID uint, event string) *MessageBuilder {
	return &MessageBuilder{
		bookingID:  bookingID,
		propertyID: propertyID,
		event:      event,
	}
}

func (b *MessageBuilder) Build() string {
	return fmt.Sprintf("🔔 Đặt chỗ %d (chỗ nghỉ %d): %s", b.bookingID, b.propertyID, b.event)
}
