package trace

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Line layouts, as documented for log readers.
const (
	TraceLayout      = "[turn]|[file]|[class]|[function]|[S|N|index]|[MMDDYYYY]|[HHMMSS|uuuuuu]|[description]"
	ComplexityLayout = "[turn]|[file]|[class]|[function]|[C]|[label]"
)

const (
	// DateLayout renders the date column (month, day, year).
	DateLayout = "01022006"

	clockLayout = "150405"
)

// DateStamp renders t as MMDDYYYY.
func DateStamp(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeStamp renders t as HHMMSS|uuuuuu (microseconds, zero padded).
func TimeStamp(t time.Time) string {
	return t.Format(clockLayout) + "|" + fmt.Sprintf("%06d", t.Nanosecond()/int(time.Microsecond))
}

// stamps validates the override pair and falls back to now when both are empty.
func stamps(ev *TraceEvent, now func() time.Time) (date, clock string, err error) {
	if (ev.Date == "") != (ev.Time == "") {
		return "", "", fmt.Errorf("%w: date=%q time=%q", ErrInvalidTimestamp, ev.Date, ev.Time)
	}
	if ev.Date != "" {
		return ev.Date, ev.Time, nil
	}
	t := now()
	return DateStamp(t), TimeStamp(t), nil
}

func plainTag(tag string) string { return tag }

// FormatTrace renders ev as a trace line. now supplies the timestamp when the
// event carries no override; a nil now means time.Now.
func FormatTrace(ev TraceEvent, now func() time.Time) (string, error) {
	if now == nil {
		now = time.Now
	}
	if !ev.State.Valid() {
		return "", invalidState(ev.State)
	}
	date, clock, err := stamps(&ev, now)
	if err != nil {
		return "", err
	}
	return renderTrace(&ev, date, clock, plainTag), nil
}

// FormatComplexity renders ev as a complexity line.
func FormatComplexity(ev ComplexityEvent) string {
	return renderComplexity(&ev, plainTag)
}

// renderTrace joins the trace columns; tag decorates the state column only.
func renderTrace(ev *TraceEvent, date, clock string, tag func(string) string) string {
	var sb strings.Builder
	sb.Grow(64 + len(ev.Description))
	writeHead(&sb, ev.Turn, ev.Subject)
	writeField(&sb, tag(ev.State.Tag()))
	writeField(&sb, date)
	writeField(&sb, clock)
	writeField(&sb, ev.Description)
	return sb.String()
}

func renderComplexity(ev *ComplexityEvent, tag func(string) string) string {
	var sb strings.Builder
	sb.Grow(48 + len(ev.Label))
	writeHead(&sb, ev.Turn, ev.Subject)
	writeField(&sb, tag(TagComplexity))
	writeField(&sb, ev.Label)
	return sb.String()
}

func writeHead(sb *strings.Builder, turn int, subj Subject) {
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(turn))
	sb.WriteByte(']')
	writeField(sb, subj.File)
	writeField(sb, subj.Class)
	writeField(sb, subj.Name)
}

func writeField(sb *strings.Builder, s string) {
	sb.WriteString("|[")
	sb.WriteString(s)
	sb.WriteByte(']')
}
