// Command ffiguard is a linter that flags unsafe memory, resource and
// foreign-function usage patterns.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/TogetherGame/ffiguard"
)

func main() {
	singlechecker.Main(ffiguard.Analyzer)
}
