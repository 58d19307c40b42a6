package dispatcher

import (
	"fmt"
	"log"
)

// Sender delivers a message to a single destination. Implemented by the
// Telegram notifier; tests substitute fakes.
type Sender interface {
	SendTo(dest, text string) error
}

// Outcome is the per-destination result of a fan-out.
type Outcome struct {
	Destination string
	Err         error
}

// Dispatcher fans an alert out to a subscriber's own chat and all
// configured secondary destinations.
type Dispatcher struct {
	Sender Sender
}

// New creates a Dispatcher over the given sender.
func New(sender Sender) *Dispatcher {
	return &Dispatcher{Sender: sender}
}

// Dispatch sends text to the primary destination first, then to every
// secondary. A primary failure aborts the whole dispatch; secondary
// failures are isolated and reported back to the primary as warning
// notices naming the failed destination.
func (d *Dispatcher) Dispatch(primary, text string, secondaries []string) ([]Outcome, error) {
	if err := d.Sender.SendTo(primary, text); err != nil {
		return nil, fmt.Errorf("send to primary %s: %w", primary, err)
	}

	outcomes := make([]Outcome, 0, len(secondaries))
	for _, dest := range secondaries {
		err := d.Sender.SendTo(dest, text)
		outcomes = append(outcomes, Outcome{Destination: dest, Err: err})
		if err == nil {
			continue
		}
		log.Printf("[WARN] send to destination %s failed: %v", dest, err)
		notice := fmt.Sprintf("⚠️ Could not deliver the alert to %s: %v", dest, err)
		if werr := d.Sender.SendTo(primary, notice); werr != nil {
			log.Printf("[ERROR] send failure notice to %s: %v", primary, werr)
		}
	}
	return outcomes, nil
}
