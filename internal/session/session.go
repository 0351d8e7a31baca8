// Package session implements the interactive question loop of the history
// explorer.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Yates-Labs/historian/internal/history"
	"github.com/Yates-Labs/historian/internal/narrative"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ErrUnexpected marks a turn that failed outside the known error kinds.
var ErrUnexpected = errors.New("unexpected failure")

// State is the lifecycle state of a Session.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Outcome tells the loop what to do after a turn.
type Outcome int

const (
	Continue Outcome = iota
	Exit
)

// Answerer is the question-answering pipeline a session drives.
type Answerer interface {
	Store() *history.Store
	Retrieve(question string) (history.Record, bool)
	Generate(ctx context.Context, record history.Record, question string) (*narrative.Narrative, error)
}

// Option configures a Session.
type Option func(*Session)

// WithProgressDelay sets the pause between the progress dots printed while
// the model is consulted. Zero prints them without pausing.
func WithProgressDelay(d time.Duration) Option {
	return func(s *Session) { s.progressDelay = d }
}

// WithLogger routes turn diagnostics to log.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Session) { s.log = log }
}

// Session reads questions line by line and prints answers. It processes one
// turn at a time, so at most one model call is ever in flight.
type Session struct {
	answerer      Answerer
	in            *bufio.Reader
	out           io.Writer
	styles        Styles
	state         State
	progressDelay time.Duration
	log           *zap.SugaredLogger
}

// New creates a Session reading from in and writing to out.
func New(answerer Answerer, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		answerer:      answerer,
		in:            bufio.NewReader(in),
		out:           out,
		styles:        NewStyles(out),
		state:         Running,
		progressDelay: 300 * time.Millisecond,
		log:           zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Run greets the user and processes turns until the user exits or input
// ends. Failed turns are reported and the loop continues. The returned error
// is non-nil only when reading input fails.
func (s *Session) Run(ctx context.Context) error {
	s.greet()

	for s.state == Running {
		fmt.Fprint(s.out, "\n"+s.styles.Prompt.Render("🤔 You:")+" ")

		// Lines have no length limit; a final line without a newline is
		// still handled before input ends.
		line, readErr := s.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			s.state = Terminated
			fmt.Fprintln(s.out)
			return errors.Wrap(readErr, "failed to read input")
		}
		if readErr == io.EOF && line == "" {
			s.state = Terminated
			fmt.Fprintln(s.out)
			return nil
		}

		outcome, err := s.Handle(ctx, line)
		if err != nil {
			s.report(err)
		}
		if outcome == Exit || readErr == io.EOF {
			s.state = Terminated
		}
	}

	return nil
}

// Handle processes a single line of input. Built-in commands are matched
// case-insensitively before the line is treated as a question.
func (s *Session) Handle(ctx context.Context, line string) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Continue
			err = errors.Wrapf(ErrUnexpected, "%v", r)
		}
	}()

	input := strings.TrimSpace(line)

	switch strings.ToLower(input) {
	case "exit", "quit":
		s.println("\n" + s.styles.Header.Render("👋 Thank you for exploring history with me! Goodbye!"))
		return Exit, nil
	case "help":
		s.help()
		return Continue, nil
	case "list":
		s.list()
		return Continue, nil
	case "":
		return Continue, nil
	}

	return Continue, s.ask(ctx, input)
}

func (s *Session) ask(ctx context.Context, question string) error {
	s.println("\n" + s.styles.Progress.Render("🔍 Searching for relevant historical information..."))

	record, ok := s.answerer.Retrieve(question)
	if !ok {
		s.println("\n" + s.styles.Error.Render("❌ I couldn't find specific information about that event in my database."))
		s.println(s.styles.Progress.Render("💡 Try asking about a different historical event or type 'list' to see available events."))
		return nil
	}

	s.println(s.styles.Success.Render("💡 Found relevant historical information!"))
	s.progress()

	narr, err := s.answerer.Generate(ctx, record, question)
	if err != nil {
		return err
	}

	s.println("\n" + s.styles.Header.Render("🎯 AI Historian:") + " " + s.styles.Answer.Render(strings.TrimSpace(narr.Text)))
	return nil
}

func (s *Session) greet() {
	s.println("\n" + s.styles.Header.Render("🎓 Welcome to the Historical Knowledge Explorer! 🌟"))
	s.println("Ask me about any historical event, or type 'exit' to quit.")
	s.println("Type 'help' for additional commands.")
}

func (s *Session) help() {
	s.println("\n" + s.styles.Header.Render("📚 Available commands:"))
	s.println("- 'list': Show available historical events")
	s.println("- 'help': Show this help message")
	s.println("- 'exit' or 'quit': End the session")
}

func (s *Session) list() {
	s.println("\n" + s.styles.Header.Render("📜 Available historical events:"))
	WriteEvents(s.out, s.answerer.Store())
}

// WriteEvents prints one line per record with its event and year.
func WriteEvents(w io.Writer, store *history.Store) {
	for _, r := range store.Records() {
		fmt.Fprintf(w, "- %s (%s)\n", r.Title(), r.When())
	}
}

// progress prints a short dotted animation while the model is consulted.
func (s *Session) progress() {
	for i := 0; i < 3; i++ {
		fmt.Fprint(s.out, s.styles.Progress.Render("."))
		if s.progressDelay > 0 {
			time.Sleep(s.progressDelay)
		}
	}
	fmt.Fprintln(s.out)
}

// report tells the user a turn failed, distinguishing model-service errors
// from anything else.
func (s *Session) report(err error) {
	s.log.Debugw("Turn failed", "error", err.Error())

	switch {
	case errors.Is(err, narrative.ErrGenerationFailed):
		s.println("\n" + s.styles.Error.Render("⚠️ The historian could not answer right now:") + " " + err.Error())
	default:
		s.println("\n" + s.styles.Error.Render("⚠️ An error occurred:") + " " + err.Error())
	}
	s.println("Please try again with a different question.")
}

func (s *Session) println(text string) {
	fmt.Fprintln(s.out, text)
}
