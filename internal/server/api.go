package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/locale"
)

// differenceResponse is the JSON body of a successful calculation.
type differenceResponse struct {
	engine.Difference
	Target    string `json:"target"`
	Reference string `json:"reference"`
}

// errorResponse is the JSON envelope of a rejected input.
// Fields maps "day", "month", "year" or "date" to a localized message.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func inputFromQuery(r *http.Request) engine.DateFieldInput {
	q := r.URL.Query()
	return engine.DateFieldInput{
		Day:   q.Get(config.QueryDay),
		Month: q.Get(config.QueryMonth),
		Year:  q.Get(config.QueryYear),
	}
}

func (s *Server) handleDifference(w http.ResponseWriter, r *http.Request) {
	today := calendar.Today(s.Clock)
	target, err := engine.ParseTarget(inputFromQuery(r), today)
	if err != nil {
		s.writeValidationError(w, r, config.FrontendAPI, err)
		return
	}

	diff := engine.ComputeDifference(target, today)
	s.Metrics.IncrementCalculations(config.FrontendAPI)

	writeJSON(w, http.StatusOK, differenceResponse{
		Difference: diff,
		Target:     target.String(),
		Reference:  today.String(),
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	today := calendar.Today(s.Clock)
	target, err := engine.ParseTarget(inputFromQuery(r), today)
	if err != nil {
		s.writeValidationError(w, r, config.FrontendICS, err)
		return
	}

	tr := s.translator(r)
	name := r.URL.Query().Get(config.QueryName)
	etag := calendarETag(target, today, name, s.Settings.CalendarReminder, tr.Language())

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderDisposition, config.DispositionICS)
	w.Header().Set(config.HeaderETag, etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	data, err := s.renderCalendar(tr, target, name, etag)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
			config.LogKeyRequestID, RequestIDFrom(r.Context()),
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// renderCalendar returns the cached rendering when its ETag matches,
// and renders and caches a new one otherwise.
func (s *Server) renderCalendar(tr *locale.Translator, target calendar.Date, name, etag string) ([]byte, error) {
	if item := s.lastCalendar.Load(); item != nil && item.etag == etag {
		return item.data, nil
	}

	builder := &engine.CalendarBuilder{
		Clock:         s.Clock,
		Reminder:      s.Settings.CalendarReminder,
		FormatSummary: tr.Summary,
	}
	data, err := builder.Build([]engine.Anniversary{engine.NewAnniversary(name, target)})
	if err != nil {
		return nil, err
	}

	s.lastCalendar.Store(&cacheItem{data: data, etag: etag})
	s.Metrics.IncrementCalendarExports()

	slog.Debug(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
	return data, nil
}

// calendarETag hashes every input of a rendering. The reference day is part
// of it, so the tag rolls over at midnight.
func calendarETag(target, today calendar.Date, name, reminder, lang string) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s", target, today, name, reminder, lang)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))
}

func (s *Server) writeValidationError(w http.ResponseWriter, r *http.Request, frontend string, err error) {
	var verr *engine.ValidationError
	if !errors.As(err, &verr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: config.HTTPMsgInternalErr})
		return
	}

	tr := s.translator(r)
	resp := errorResponse{Error: config.APICodeValidation, Fields: map[string]string{}}
	for _, kind := range engine.Fields {
		if o := verr.Field(kind); o != engine.FieldValid {
			resp.Fields[kind.String()] = tr.Msg(o.MessageKey(kind))
			s.Metrics.IncrementValidationFailure(frontend, kind.String(), o.String())
		}
	}
	if verr.Date != engine.DateValid {
		resp.Fields[config.APIKeyDate] = tr.Msg(verr.Date.MessageKey())
		s.Metrics.IncrementValidationFailure(frontend, config.APIKeyDate, verr.Date.String())
	}

	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
