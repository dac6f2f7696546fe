package interp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mjuvekar7/Symphonia"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (in *Interpreter) help(ctx context.Context, line string) Result {
	if line != "help" {
		return fail(grammar("Usage: help"))
	}
	return ok(helpText(in.commands))
}

// helpText lists the commands with their usage, followed by the dynamic
// markings.
func helpText(commands map[string]command) string {
	keywords := make([]string, 0, len(commands))
	for k := range commands {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, k := range keywords {
		c := commands[k]
		fmt.Fprintf(&b, "  %-8s %s\n", k, c.help)
		fmt.Fprintf(&b, "           %s\n", c.usage)
	}
	b.WriteString("  addmode  route every line through add\n")
	b.WriteString("           Usage: addmode on|off\n")
	b.WriteString("  exit     leave Symphonia\n")
	b.WriteString("Dynamic markings, softest first:\n")
	title := cases.Title(language.English)
	for d := symphonia.Ppp; d <= symphonia.Fff; d++ {
		fmt.Fprintf(&b, "  %-4s %s\n", d, title.String(d.LongName()))
	}
	b.WriteString("Durations: ")
	for i, v := range symphonia.Durations {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(symphonia.FormatDuration(v))
	}
	return b.String()
}
