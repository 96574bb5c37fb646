package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/handlermap/pkg/errors"
)

// Kind is the type of a status event.
type Kind string

// Event kinds.
const (
	KindProgress Kind = "progress"
	KindDone     Kind = "done"
	KindError    Kind = "error"
)

// Event is one status notification of an export run.
type Event struct {
	Kind Kind
	Data string
}

// Progress reports that processed of total call handlers are done.
func Progress(processed, total int) Event {
	return Event{Kind: KindProgress, Data: strconv.Itoa(processed) + "," + strconv.Itoa(total)}
}

// Done reports successful completion; filename is the row file's basename.
func Done(filename string) Event {
	return Event{Kind: KindDone, Data: filename}
}

// Failure reports a fatal error.
func Failure(err error) Event {
	return Event{Kind: KindError, Data: errors.UserMessage(err)}
}

// Terminal reports whether e ends a stream.
func (e Event) Terminal() bool {
	return e.Kind == KindDone || e.Kind == KindError
}

// Counts parses the payload of a progress event.
func (e Event) Counts() (processed, total int, ok bool) {
	if e.Kind != KindProgress {
		return 0, 0, false
	}
	p, t, found := strings.Cut(e.Data, ",")
	if !found {
		return 0, 0, false
	}
	processed, err1 := strconv.Atoi(p)
	total, err2 := strconv.Atoi(t)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return processed, total, true
}

// String returns the event in server-sent-events framing: an event line, a
// data line and a blank separator line. Line breaks inside the data are
// replaced by spaces so the frame always has exactly two lines.
func (e Event) String() string {
	data := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(e.Data)
	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Kind, data)
}

// WriteTo writes the framed event to w.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}
