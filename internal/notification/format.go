package notification

import (
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
)

// StatusDisplay - отображение статуса бронирования в сообщении
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) StatusDisplay {
	displays := map[model.BookingStatus]StatusDisplay{
		model.BookingStatusRequested: {"📨", "Requested"},
		model.BookingStatusInReview:  {"👀", "In review"},
		model.BookingStatusAccepted:  {"🤝", "Accepted"},
		model.BookingStatusRejected:  {"🚫", "Rejected"},
		model.BookingStatusPaid:      {"💰", "Paid"},
		model.BookingStatusCompleted: {"✔️", "Completed"},
		model.BookingStatusCancelled: {"❌", "Cancelled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", string(status)}
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

// FormatPrice форматирует сумму, копейки опускаются если их нет
func FormatPrice(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("$%.0f", amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}
