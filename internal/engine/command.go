package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a structured UI command: a path such as "/vis/open" and its
// parameters.
type Command struct {
	Name   string
	Params []string
}

// Cmd builds a command, formatting numeric parameters compactly.
func Cmd(name string, params ...any) Command {
	c := Command{Name: name}
	for _, p := range params {
		c.Params = append(c.Params, formatParam(p))
	}
	return c
}

// String renders the command as the engine's UI would read it.
func (c Command) String() string {
	if len(c.Params) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Params, " ")
}

func formatParam(p any) string {
	switch x := p.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(p)
	}
}
