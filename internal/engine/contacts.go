package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
)

// ContactAge is the exact age of one vCard contact.
type ContactAge struct {
	// UID is a deterministic hash of name and birth date, stable across runs.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the parsed BDAY value.
	DateOfBirth calendar.Date

	// Age is the time elapsed from DateOfBirth to the reference day.
	Age Difference
}

// ContactReader computes contact ages from a local or remote vCard source.
type ContactReader struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Interface for network abstraction.
}

// Read loads source (a file path or an http(s) URL) and returns the age of
// every contact with a full birth date, oldest first.
//
// Cards without BDAY, with a year-less BDAY (--MM-DD) or with a birth date
// after today are skipped: no elapsed time can be computed for them.
func (r *ContactReader) Read(ctx context.Context, source, user, pass string) ([]ContactAge, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	stream, err := r.open(ctx, source, user, pass)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	defer func() { _ = stream.Close() }()

	contacts, err := r.decode(ctx, stream)
	if err != nil {
		return nil, err
	}

	log.Debug(config.MsgContactsRead,
		config.LogKeyFound, len(contacts),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return contacts, nil
}

// open selects the data source based on the shape of source.
func (r *ContactReader) open(ctx context.Context, source, user, pass string) (io.ReadCloser, error) {
	if isRemote(source) {
		if r.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return r.Fetcher.Fetch(ctx, source, user, pass)
	}
	return os.Open(source)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") || strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}

// decode parses the vCard stream and computes one ContactAge per usable card.
func (r *ContactReader) decode(ctx context.Context, stream io.Reader) ([]ContactAge, error) {
	today := calendar.Today(r.Clock)
	decoder := vcard.NewDecoder(stream)
	stats := struct{ processed, withBday int }{}
	var contacts []ContactAge

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A single bad card must not hide the others.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}
		stats.processed++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		dob, err := parseBirthDate(bday.Value)
		if err != nil || dob.After(today) {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		name := contactName(card)
		contacts = append(contacts, ContactAge{
			UID:         contactUID(name, dob),
			Name:        name,
			DateOfBirth: dob,
			Age:         ComputeDifference(dob, today),
		})
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		a, b := contacts[i], contacts[j]
		if c := a.DateOfBirth.Compare(b.DateOfBirth); c != 0 {
			return c < 0
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	slog.Info(config.MsgContactsRead,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
		),
	)
	return contacts, nil
}

// contactName applies FN (Formatted) > N (Structured) > Fallback.
func contactName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Name(); n != nil {
		if name := strings.TrimSpace(n.GivenName + " " + n.FamilyName); name != "" {
			return name
		}
	}
	return config.FallbackName
}

// contactUID derives a stable identifier from the name and birth date.
func contactUID(name string, dob calendar.Date) string {
	input := fmt.Sprintf(config.FormatHashInput, name, dob.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// parseBirthDate accepts the vCard full-date forms that carry a year.
func parseBirthDate(value string) (calendar.Date, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return calendar.FromTime(t), nil
		}
	}
	return calendar.Date{}, errors.New(config.ErrDateParse)
}
