package tickets

import "fmt"

// MovieTicket is a ticket for one showing.
type MovieTicket struct {
	Title string
	Price float64
}

// TicketStore is the persistence boundary the box office depends on.
type TicketStore interface {
	Find(title string) (MovieTicket, error)
	Add(ticket MovieTicket) error
	Titles() []string
}

// Markup returns the stored ticket for title with its price raised by
// percent.
func Markup(store TicketStore, title string, percent float64) (MovieTicket, error) {
	ticket, err := store.Find(title)
	if err != nil {
		return MovieTicket{}, fmt.Errorf("failed to mark up %q: %w", title, err)
	}

	ticket.Price *= 1 + percent/100

	return ticket, nil
}

// Catalog lists every stored title.
func Catalog(store TicketStore) []string {
	return store.Titles()
}
