package commands

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/chatgram/grammar"
)

// MinPollOptions is the fewest options a poll may be opened with.
const MinPollOptions = 2

// MaxPollOptions is the most options a poll may offer, one per number
// reaction.
const MaxPollOptions = 10

// ErrUsage is wrapped by every error returned from [Usage].
var ErrUsage = grammar.NewError("usage")

// Usage reports arguments missing from c, or nil if c can be run. The
// error text is meant for the user who sent the command.
func Usage(c *Command) error {
	switch {
	case c == nil:
		return usage("", "Not a command.")

	case c.Talk != nil:
		return talkUsage(c.Talk)

	case c.Poll != nil:
		return pollUsage(c.Poll)

	case c.Help != nil:
		return nil
	}

	return usage("", `Unknown command. Try "`+Prefix+` help".`)
}

func talkUsage(t *Talk) error {
	switch {
	case t.Join != nil, t.Leave != nil, t.Skip != nil:
		return nil

	case t.Voice != nil:
		if t.Voice.List == nil && t.Voice.Set == nil {
			return usage("talk voice", `Try "`+Prefix+` talk voice list" or "`+Prefix+` talk voice set [voice]".`)
		}

		if t.Voice.Set != nil && t.Voice.Set.Value == "" {
			return usage("talk voice set", "You must specify what voice to set.")
		}

	case t.Map != nil:
		m := t.Map

		switch {
		case m.Add != nil && (m.Add.From == "" || m.Add.To == ""):
			return usage("talk map add",
				`Not enough arguments. Usage: "`+Prefix+` talk map add [from_word] [to_word]".`)

		case m.Remove != nil && m.Remove.Value == "":
			return usage("talk map remove",
				`You must specify the id of the map you want to remove. Use "`+Prefix+` talk map list" to see the list of the ids.`)

		case m.List == nil && m.Add == nil && m.Remove == nil:
			return usage("talk map", `Try "`+Prefix+` talk map list", "add", or "remove".`)
		}

	default:
		return usage("talk", `Try "`+Prefix+` help talk".`)
	}

	return nil
}

func pollUsage(p *Poll) error {
	switch {
	case p.Repeat != nil:
		return nil

	case p.Open == nil:
		return usage("poll", `Try "`+Prefix+` help poll".`)

	case p.Open.Title == "":
		return usage("poll open", "You need to specify the title first.")

	case len(p.Open.Options) < MinPollOptions:
		return usage("poll open", "You need at least 2 options to start a poll.")

	case len(p.Open.Options) > MaxPollOptions:
		return usage("poll open", "A poll can have at most 10 options.")
	}

	return nil
}

func usage(command, msg string) error {
	attrs := []slog.Attr{slog.String("message", msg)}
	if command != "" {
		attrs = append(attrs, slog.String("command", command))
	}

	return ErrUsage.Wrap(usageMessage(strings.TrimSpace(msg))).With(attrs...)
}

// usageMessage is the user-facing text of a usage error.
type usageMessage string

func (m usageMessage) Error() string { return string(m) }

// Message returns the user-facing text of an error returned by [Usage],
// or err.Error() for any other error.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var m usageMessage
	if errors.As(err, &m) {
		return string(m)
	}

	return err.Error()
}
