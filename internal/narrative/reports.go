package narrative

import (
	"fmt"
	"log/slog"
)

const chroniclerSystem = `You are a Roman chronicler recording the wars between Rome and Carthage for posterity. Write terse, vivid annal entries in the manner of Livy. Two sentences at most. Never break character or mention a simulation.`

// Result is a completed prose request. Day, and the battle fields when
// set, give consumers enough context to splice the text into the
// chronicle even after the log has moved on.
type Result struct {
	Day      int
	Category string
	Text     string
}

// Reporter dispatches prose requests in the background and queues their
// results. The tick engine drains Results between ticks; a full queue
// drops the generated text rather than stalling, since the fallback line
// has already been chronicled.
type Reporter struct {
	client  *Client
	results chan Result
}

// NewReporter wraps a client. A nil client yields a reporter whose
// requests all no-op, leaving only fallback text.
func NewReporter(client *Client) *Reporter {
	return &Reporter{
		client:  client,
		results: make(chan Result, 16),
	}
}

// Results returns the completion queue.
func (r *Reporter) Results() <-chan Result { return r.results }

// BattleFallback is the deterministic line used when generated prose is
// unavailable or has not arrived yet.
func BattleFallback(location, winner, loser string) string {
	return fmt.Sprintf("%s defeated %s at %s", winner, loser, location)
}

// RequestBattle asks for prose describing a resolved battle.
// Fire-and-forget: failures are logged at debug and otherwise dropped,
// permanently — there is no retry.
func (r *Reporter) RequestBattle(day int, location, winner, loser string) {
	if !r.client.Enabled() {
		return
	}
	go func() {
		prompt := fmt.Sprintf("In the year-day %d of the war, the forces of %s defeated the forces of %s at %s. Record the battle.",
			day, winner, loser, location)
		text, err := r.client.Complete(chroniclerSystem, prompt, 200)
		if err != nil {
			slog.Debug("battle narration failed", "location", location, "error", err)
			return
		}
		r.deliver(Result{Day: day, Category: "battle", Text: text})
	}()
}

// RequestYearlyState asks for a state-of-the-war entry. Invoked on the
// winter-to-summer transition with a pre-built world summary.
func (r *Reporter) RequestYearlyState(day int, summary string) {
	if !r.client.Enabled() {
		return
	}
	go func() {
		prompt := fmt.Sprintf("The snows have melted and campaigning season begins. The state of the war: %s. Record the year's opening.", summary)
		text, err := r.client.Complete(chroniclerSystem, prompt, 300)
		if err != nil {
			slog.Debug("yearly narration failed", "error", err)
			return
		}
		r.deliver(Result{Day: day, Category: "season", Text: text})
	}()
}

func (r *Reporter) deliver(res Result) {
	select {
	case r.results <- res:
	default:
		slog.Debug("narrative queue full, dropping result", "category", res.Category)
	}
}
