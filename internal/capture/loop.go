package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/souljazzfunk/ocr-kindle/internal/session"
)

// Page is one captured page image on disk.
type Page struct {
	Index      int
	Path       string
	CapturedAt time.Time
}

// Outcome labels how a capture run ended. Exhausting the page budget is a
// normal outcome, not an error: long books span multiple sessions and
// continuation mode picks up where the budget stopped.
type Outcome string

const (
	EndOfBook  Outcome = "end of book"
	PageBudget Outcome = "page budget reached"
)

// Result is what a completed capture run produced.
type Result struct {
	Pages   []Page
	Outcome Outcome
}

// Loop drives the capture-compare-advance cycle for one session.
type Loop struct {
	Surface     Surface
	Advancer    Advancer
	Detector    *Detector
	RunLength   int
	SettleDelay time.Duration

	// Wait pauses between page turns. Injectable so tests run without real
	// delays; nil means a context-aware timer.
	Wait func(ctx context.Context, d time.Duration) error
}

// Run captures up to maxPages pages starting at the session's start index.
// It stops early when RunLength consecutive captures look like the same page,
// deleting the one trailing duplicate image before reporting.
func (l *Loop) Run(ctx context.Context, sess *session.Session, maxPages int) (Result, error) {
	wait := l.Wait
	if wait == nil {
		wait = sleepWait
	}

	var (
		result   Result
		previous []byte
		dupRun   int
	)

	last := sess.StartIndex + maxPages - 1
	for index := sess.StartIndex; index <= last; index++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		img, err := l.Surface.Capture()
		if err != nil {
			return result, fmt.Errorf("capture page %d: %w", index, err)
		}
		path := sess.PagePath(index)
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return result, fmt.Errorf("write page %d image: %w", index, err)
		}
		page := Page{Index: index, Path: path, CapturedAt: time.Now()}

		if index > sess.StartIndex {
			verdict := l.Detector.Compare(previous, img)
			if verdict.SamePage {
				dupRun++
				slog.Debug("Page looks unchanged", "index", index, "confidence", verdict.Confidence, "run", dupRun)
				if dupRun >= l.RunLength {
					if err := os.Remove(path); err != nil {
						slog.Warn("Failed to remove duplicate trailing page", "path", path, "err", err)
					}
					slog.Info("End of book detected", "pages", len(result.Pages), "run", dupRun)
					result.Outcome = EndOfBook
					return result, nil
				}
			} else {
				dupRun = 0
			}
		}

		result.Pages = append(result.Pages, page)
		previous = img

		if index < last {
			if err := l.Advancer.Advance(); err != nil {
				// A failed page turn means the next capture repeats this
				// page; similarity detection absorbs that, so keep going.
				slog.Warn("Page advance failed, continuing", "index", index, "err", err)
			}
			if err := wait(ctx, l.SettleDelay); err != nil {
				return result, err
			}
		}
	}

	result.Outcome = PageBudget
	return result, nil
}

func sleepWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
