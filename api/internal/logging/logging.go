package logging

import (
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// Setup configures the process-wide apex logger. format is "text" or "json".
func Setup(level, format string) {
	setup(os.Stderr, level, format)
}

func setup(w io.Writer, level, format string) {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		log.SetHandler(json.New(w))
	} else {
		log.SetHandler(text.New(w))
	}

	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
		log.Warnf("unknown LOG_LEVEL %q, using info", level)
	}
	log.SetLevel(lvl)
}
