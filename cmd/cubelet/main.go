// cubelet - animated Rubik's cube state engine with keyboard and GoCube input.
package main

import (
	"github.com/SeamusWaldron/cubelet/internal/cli"
)

func main() {
	cli.Execute()
}
