package library

import "github.com/rs/zerolog"

// Sink receives a rendered notification message. Implementations are
// side-effect only (log, print, simulate transmission); nothing consults a
// return value.
type Sink interface {
	Render(message string)
}

// Notifier is a one-to-many broadcast of human-readable event strings.
// Lending and reservation operations share one Notifier; sinks are attached
// and detached dynamically.
type Notifier struct {
	log   zerolog.Logger
	sinks []Sink
}

// NewNotifier returns a Notifier with no sinks attached.
func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{log: log}
}

// Attach adds a sink at the end of the delivery order. Duplicates are
// allowed and each copy is delivered to.
func (n *Notifier) Attach(s Sink) {
	n.sinks = append(n.sinks, s)
	n.log.Debug().Int("sinks", len(n.sinks)).Msg("notification sink attached")
}

// Detach removes the first attached sink equal to s. Unknown sinks are
// ignored.
func (n *Notifier) Detach(s Sink) {
	for i, attached := range n.sinks {
		if attached == s {
			n.sinks = append(n.sinks[:i], n.sinks[i+1:]...)
			n.log.Debug().Int("sinks", len(n.sinks)).Msg("notification sink detached")
			return
		}
	}
}

// Broadcast delivers the message synchronously to every sink in attachment
// order. A sink that panics is isolated so the rest still receive the
// message.
func (n *Notifier) Broadcast(message string) {
	for _, s := range n.sinks {
		n.deliver(s, message)
	}
}

func (n *Notifier) deliver(s Sink, message string) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Interface("panic", r).Msg("notification sink failed")
		}
	}()
	s.Render(message)
}

// EmailSink simulates email delivery by logging the message.
type EmailSink struct {
	Email string
	log   zerolog.Logger
}

// NewEmailSink returns a sink addressed to the given email.
func NewEmailSink(email string, log zerolog.Logger) *EmailSink {
	return &EmailSink{Email: email, log: log}
}

// Render implements Sink.
func (s *EmailSink) Render(message string) {
	s.log.Info().Str("channel", "email").Str("to", s.Email).Msg(message)
}

// SMSSink simulates SMS delivery by logging the message.
type SMSSink struct {
	Phone string
	log   zerolog.Logger
}

// NewSMSSink returns a sink addressed to the given phone number.
func NewSMSSink(phone string, log zerolog.Logger) *SMSSink {
	return &SMSSink{Phone: phone, log: log}
}

// Render implements Sink.
func (s *SMSSink) Render(message string) {
	s.log.Info().Str("channel", "sms").Str("to", s.Phone).Msg(message)
}
