package macro

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const rotation = "r000"

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func nums(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = num(f)
	}
	return strings.Join(parts, " ")
}

// WriteGeometry renders the text geometry description.
func (b *Backend) WriteGeometry(w io.Writer) error {
	if b.world == nil {
		return fmt.Errorf("macro: no world defined")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// physics list: %s\n", b.physics)
	fmt.Fprintf(bw, ":ROTM %s 0. 0. 0.\n\n", rotation)

	kw, params := solid(b.world.shape)
	fmt.Fprintf(bw, ":VOLU %s %s %s %s\n", WorldName, kw, nums(params), b.world.material)
	fmt.Fprintf(bw, ":VIS %s OFF\n", WorldName)

	for _, v := range b.volumes {
		kw, params := solid(v.shape)
		fmt.Fprintf(bw, "\n:VOLU %s %s %s %s\n", v.name, kw, nums(params), v.material)
		if v.position != nil {
			p := *v.position
			fmt.Fprintf(bw, ":PLACE %s 1 %s %s %s %s %s\n", v.name, WorldName, rotation, num(p.X), num(p.Y), num(p.Z))
		}
		if v.colour != nil {
			c := *v.colour
			fmt.Fprintf(bw, ":COLOUR %s %s %s %s\n", v.name, num(c.R), num(c.G), num(c.B))
		}
	}
	return bw.Flush()
}

// WriteMacro renders the UI commands in issue order. Gun setup is written
// just before the first beamOn, or last when no events were requested.
func (b *Backend) WriteMacro(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# generated by g4basic")
	fmt.Fprintf(bw, "# physics list: %s\n", b.physics)
	gunWritten := false
	writeGun := func() {
		for _, c := range b.gun {
			fmt.Fprintln(bw, c.String())
		}
		gunWritten = true
	}
	for _, c := range b.commands {
		if c.Name == "/run/beamOn" && !gunWritten {
			writeGun()
		}
		fmt.Fprintln(bw, c.String())
	}
	if !gunWritten {
		writeGun()
	}
	return bw.Flush()
}
