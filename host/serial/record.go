package serial

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// Record is one decoded log line from the firmware console
type Record struct {
	Time  string
	Level string
	Msg   string
	Attrs map[string]string
	// Raw is the line as received
	Raw string
}

// Int returns attribute key as an integer
func (r Record) Int(key string) (int, bool) {
	v, ok := r.Attrs[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsEvent reports whether the record is part of an event ring dump
func (r Record) IsEvent() bool {
	return strings.HasPrefix(r.Msg, "[EVENTS] ")
}

var errNotRecord = errors.New("not a log record")

// ParseRecord decodes a key=value line as written by slog's text
// handler. Lines that do not start with a key=value pair are rejected
// (boot noise, partial lines after a reconnect).
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields, err := shlex.Split(line)
	if err != nil {
		return Record{}, err
	}
	if len(fields) == 0 || !strings.Contains(fields[0], "=") {
		return Record{}, errNotRecord
	}

	rec := Record{Attrs: make(map[string]string), Raw: line}
	for _, f := range fields {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return Record{}, errNotRecord
		}
		switch key {
		case "time":
			rec.Time = val
		case "level":
			rec.Level = val
		case "msg":
			rec.Msg = val
		default:
			rec.Attrs[key] = val
		}
	}
	return rec, nil
}

// Tail reads lines from r until ctx is done, r hits EOF or fails, handing each
// decodable record to fn. Undecodable lines are passed through with only
// Raw set.
func Tail(ctx context.Context, r io.Reader, fn func(Record)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			rec = Record{Raw: line}
		}
		fn(rec)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return ctx.Err()
}
