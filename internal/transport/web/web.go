package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/avstrong/zenith/internal/account"
	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/catalog"
	"github.com/avstrong/zenith/internal/contact"
	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/quote"
)

type bookingService interface {
	Submit(ctx context.Context, input *booking.BookInput) (*booking.Record, error)
	List(ctx context.Context) ([]*booking.Record, error)
	Get(ctx context.Context, bookingID string) (*booking.Record, error)
}

type catalogService interface {
	Find(f catalog.Filter) []catalog.Service
	Frequencies() []catalog.Frequency
	TimeSlots() []string
}

type quoteService interface {
	Calculate(req quote.Request) quote.Breakdown
}

type accountService interface {
	Register(ctx context.Context, input *account.RegisterInput) (*account.Account, error)
	Login(ctx context.Context, input *account.LoginInput) (*account.Session, error)
}

type contactService interface {
	Submit(ctx context.Context, msg *contact.Message) (*contact.Receipt, error)
}

type Server struct {
	srv      *http.Server
	router   *http.ServeMux
	l        *logger.Logger
	conf     Conf
	bookings bookingService
	catalog  catalogService
	quotes   quoteService
	accounts accountService
	contact  contactService
	limiters *limiterStore
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	// MaxRequestsPerMin is the per-client budget; zero disables limiting.
	MaxRequestsPerMin int
}

type Deps struct {
	Bookings bookingService
	Catalog  catalogService
	Quotes   quoteService
	Accounts accountService
	Contact  contactService
}

func New(ctx context.Context, conf Conf, deps Deps) (*Server, error) {
	mux := http.NewServeMux()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           mux,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:      srv,
		router:   mux,
		l:        conf.L,
		conf:     conf,
		bookings: deps.Bookings,
		catalog:  deps.Catalog,
		quotes:   deps.Quotes,
		accounts: deps.Accounts,
		contact:  deps.Contact,
		limiters: newLimiterStore(conf.MaxRequestsPerMin),
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
