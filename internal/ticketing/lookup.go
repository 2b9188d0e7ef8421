package ticketing

import "theatre-box-office/internal/models"

// Record is a catalog entry. It is implemented only by PlayRecord and TicketRecord,
// so a lookup always knows which identifier it compares against.
type Record interface {
	record()
}

// PlayRecord wraps a play; it is matched by play id
type PlayRecord struct{ models.Play }

// TicketRecord wraps a ticket; it is matched by event id
type TicketRecord struct{ models.Ticket }

func (PlayRecord) record()   {}
func (TicketRecord) record() {}

// ByID returns a predicate matching a record's own identifier
func ByID(id int) func(Record) bool {
	return func(r Record) bool {
		switch rec := r.(type) {
		case PlayRecord:
			return rec.ID == id
		case TicketRecord:
			return rec.EventID == id
		default:
			return false
		}
	}
}

// FindTicket looks a ticket up by its event id
func FindTicket(tickets []models.Ticket, id int) (models.Ticket, bool) {
	match := ByID(id)
	for _, t := range tickets {
		if match(TicketRecord{t}) {
			return t, true
		}
	}
	return models.Ticket{}, false
}

// FindPlay looks a play up by id
func FindPlay(plays []models.Play, id int) (models.Play, bool) {
	match := ByID(id)
	for _, p := range plays {
		if match(PlayRecord{p}) {
			return p, true
		}
	}
	return models.Play{}, false
}
