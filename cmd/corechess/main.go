// corechess is the UCI engine binary: it wires config+logging, then
// runs the UCI protocol loop over stdin/stdout. Grounded on
// zurichess/main.go's flag-parsing-then-stdin-loop shape, with the
// profiling flags switched from its raw pprof calls to
// github.com/pkg/profile's Start/Stop helpers, matching how
// frankkopp-FrankyGo's own search benchmarks invoke that package.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/maren-voss/corechess/config"
	"github.com/maren-voss/corechess/uci"
)

var (
	configPath = flag.String("config", "", "path to a TOML configuration file")
	cpuprofile = flag.Bool("cpuprofile", false, "write a CPU profile for this run")
	memprofile = flag.Bool("memprofile", false, "write a memory profile for this run")
	version    = flag.Bool("version", false, "print version and exit")
)

const buildVersion = "corechess (devel)"

func main() {
	flag.Parse()
	if *version {
		fmt.Println(buildVersion)
		return
	}

	if err := config.Setup(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *cpuprofile {
		defer profile.Start(profile.CPUProfile).Stop()
	} else if *memprofile {
		defer profile.Start(profile.MemProfile).Stop()
	}

	front := uci.New(os.Stdout)
	front.Run(os.Stdin)
}
