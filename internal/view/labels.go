package view

import "github.com/geek-records/support-desk/internal/domain"

// The portal renders enum values as localized badge text plus a color class.
// Both maps are total over their enum; exhaustiveness is asserted in tests,
// there is no runtime fallback.

var statusLabels = map[domain.TicketStatus]string{
	domain.TicketStatusOpen:       "Открыт",
	domain.TicketStatusInProgress: "В работе",
	domain.TicketStatusResolved:   "Решен",
	domain.TicketStatusClosed:     "Закрыт",
}

var statusClasses = map[domain.TicketStatus]string{
	domain.TicketStatusOpen:       "bg-green-100 text-green-800",
	domain.TicketStatusInProgress: "bg-blue-100 text-blue-800",
	domain.TicketStatusResolved:   "bg-purple-100 text-purple-800",
	domain.TicketStatusClosed:     "bg-gray-100 text-gray-800",
}

var priorityLabels = map[domain.TicketPriority]string{
	domain.TicketPriorityLow:      "Низкий",
	domain.TicketPriorityMedium:   "Средний",
	domain.TicketPriorityHigh:     "Высокий",
	domain.TicketPriorityCritical: "Критический",
}

var priorityClasses = map[domain.TicketPriority]string{
	domain.TicketPriorityLow:      "bg-blue-100 text-blue-800",
	domain.TicketPriorityMedium:   "bg-yellow-100 text-yellow-800",
	domain.TicketPriorityHigh:     "bg-orange-100 text-orange-800",
	domain.TicketPriorityCritical: "bg-red-100 text-red-800",
}

// StatusLabel returns the display label for a status.
func StatusLabel(status domain.TicketStatus) string {
	return statusLabels[status]
}

// StatusClass returns the badge color class for a status.
func StatusClass(status domain.TicketStatus) string {
	return statusClasses[status]
}

// PriorityLabel returns the display label for a priority.
func PriorityLabel(priority domain.TicketPriority) string {
	return priorityLabels[priority]
}

// PriorityClass returns the badge color class for a priority.
func PriorityClass(priority domain.TicketPriority) string {
	return priorityClasses[priority]
}
