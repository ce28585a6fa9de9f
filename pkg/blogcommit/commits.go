package blogcommit

import (
	"fmt"
	"strings"
)

// Message is a commit subject plus its body paragraph.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewMessage builds the message for one batch.
// The message has the form:
//
//	<prefix> - <first slug>
//
//	Committed <n> <noun> file(s).
//
//	Slugs:
//	- <slug>
//	- ...
func NewMessage(prefix, noun string, slugs []string) Message {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	if noun == "" {
		noun = DefaultNoun
	}

	first := ""
	if len(slugs) > 0 {
		first = slugs[0]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Committed %d %s file(s).\n\nSlugs:", len(slugs), noun)
	for _, slug := range slugs {
		sb.WriteString("\n- ")
		sb.WriteString(slug)
	}

	return Message{
		Subject: prefix + " - " + first,
		Body:    sb.String(),
	}
}

// String renders the message the way git stores it for `commit -m subject -m body`.
func (m Message) String() string {
	if m.Body == "" {
		return m.Subject
	}
	return m.Subject + "\n\n" + m.Body
}
