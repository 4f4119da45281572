package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/avstrong/zenith/internal/account"
	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/catalog"
	"github.com/avstrong/zenith/internal/confirmation"
	"github.com/avstrong/zenith/internal/contact"
	"github.com/avstrong/zenith/internal/quote"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
	case booking.IsInputError(err) != nil:
		s.writeError(w, "decode request", err)
	default:
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	}

	return false
}

// writeError maps domain errors to status codes. Input errors carry their
// per-field messages in the body.
func (s *Server) writeError(w http.ResponseWriter, action string, err error) {
	if inputErr := booking.IsInputError(err); inputErr != nil {
		writeJSON(w, http.StatusBadRequest, inputErr.Fields())

		return
	}

	switch {
	case errors.Is(err, account.ErrPasswordMismatch):
		writeJSON(w, http.StatusBadRequest, map[string][]string{"confirm_password": {err.Error()}})
	case errors.Is(err, account.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, map[string][]string{"email": {err.Error()}})
	case errors.Is(err, booking.ErrRecordNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	default:
		s.l.LogErrorf("Could not %s: %v", action, err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) listServicesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	services := s.catalog.Find(catalog.Filter{
		Search:     q.Get("search"),
		Category:   q.Get("category"),
		Location:   q.Get("location"),
		PriceRange: q.Get("price"),
	})

	writeJSON(w, http.StatusOK, services)
}

func (s *Server) listFrequenciesHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Frequencies())
}

func (s *Server) listTimeSlotsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.TimeSlots())
}

func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	var req quote.Request
	if !s.decode(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, s.quotes.Calculate(req))
}

func (s *Server) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if key := r.Header.Get("Idempotency-Key"); key != "" {
		ctx = booking.NewContextWithIdempotencyKey(ctx, key)
	}

	var input booking.BookInput
	if !s.decode(w, r, &input) {
		return
	}

	out, err := s.bookings.Submit(ctx, &input)
	if err != nil {
		s.writeError(w, "create a booking", err)

		return
	}

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.bookings.List(r.Context())
	if err != nil {
		s.writeError(w, "list bookings", err)

		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) findBooking(w http.ResponseWriter, r *http.Request) (*booking.Record, bool) {
	rec, err := s.bookings.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, "get a booking", err)

		return nil, false
	}

	return rec, true
}

func (s *Server) confirmationTextHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.findBooking(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", confirmation.FileName(rec)))

	if _, err := w.Write([]byte(confirmation.Text(rec))); err != nil {
		s.l.LogErrorf("Could not write confirmation %s: %v", rec.BookingID, err.Error())
	}
}

func (s *Server) printHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.findBooking(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := confirmation.HTML(w, rec); err != nil {
		s.l.LogErrorf("Could not render print page %s: %v", rec.BookingID, err.Error())
	}
}

func (s *Server) shareHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.findBooking(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"title": confirmation.ShareTitle,
		"text":  confirmation.ShareText(rec),
	})
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var input account.RegisterInput
	if !s.decode(w, r, &input) {
		return
	}

	out, err := s.accounts.Register(r.Context(), &input)
	if err != nil {
		s.writeError(w, "register an account", err)

		return
	}

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input account.LoginInput
	if !s.decode(w, r, &input) {
		return
	}

	out, err := s.accounts.Login(r.Context(), &input)
	if err != nil {
		s.writeError(w, "open a session", err)

		return
	}

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) contactHandler(w http.ResponseWriter, r *http.Request) {
	var msg contact.Message
	if !s.decode(w, r, &msg) {
		return
	}

	out, err := s.contact.Submit(r.Context(), &msg)
	if err != nil {
		s.writeError(w, "submit a contact message", err)

		return
	}

	writeJSON(w, http.StatusAccepted, out)
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	routes := map[string]http.HandlerFunc{
		"GET /api/services":                       s.listServicesHandler,
		"GET /api/frequencies":                    s.listFrequenciesHandler,
		"GET /api/time-slots":                     s.listTimeSlotsHandler,
		"POST /api/quotes":                        s.quoteHandler,
		"POST /api/bookings":                      s.createBookingHandler,
		"GET /api/bookings":                       s.listBookingsHandler,
		"GET /api/bookings/{id}/confirmation.txt": s.confirmationTextHandler,
		"GET /api/bookings/{id}/print":            s.printHandler,
		"GET /api/bookings/{id}/share":            s.shareHandler,
		"POST /api/accounts":                      s.registerHandler,
		"POST /api/sessions":                      s.loginHandler,
		"POST /api/contact":                       s.contactHandler,
	}

	for pattern, h := range routes {
		r.Handle(
			pattern,
			s.applyMiddlewares(h, s.rateLimitMiddleware(), s.loggerMiddleware(), s.recoverMiddleware()),
		)
	}

	r.Handle(
		fmt.Sprintf("GET %s", s.conf.LivenessEndpoint),
		s.applyMiddlewares(http.HandlerFunc(s.livenessHandler), s.loggerMiddleware(), s.recoverMiddleware()),
	)
}
