package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/tricubic/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// NewFileGroup opens the log and profile files requested by a config file
// and starts logging and profiling to them.
func NewFileGroup(con *io.SharedConfig) (*FileGroup, error) {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			return nil, err
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			return nil, err
		}
		if err = pprof.StartCPUProfile(fg.prof); err != nil {
			return nil, err
		}
	}

	return fg, nil
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		log.SetOutput(os.Stderr)
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		interpolate, plot, stats string
		exampleConfig           string
		threads                 int
		verbose                 bool
	)
	vars := map[string]*string{
		"Interpolate":   &interpolate,
		"Plot":          &plot,
		"Stats":         &stats,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.BoolVar(&verbose, "Verbose", false, "Log debugging information.")
	flag.StringVar(
		&interpolate, "Interpolate", "",
		"Configuration file for [Interpolate] mode.",
	)
	flag.StringVar(
		&plot, "Plot", "", "Configuration file for [Plot] mode.",
	)
	flag.StringVar(
		&stats, "Stats", "", "Configuration file for [Stats] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Interpolate', "+
			"'Plot', and 'Stats'.",
	)

	flag.Parse()

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if threads <= 0 {
		log.Fatalf("-Threads must be positive, but is %d.", threads)
	}
	runtime.GOMAXPROCS(threads)

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Interpolate":
		wrap := io.DefaultInterpolateWrapper()
		if err := gcfg.ReadFileInto(wrap, interpolate); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Interpolate
		if err := con.CheckInit(); err != nil {
			log.Fatal(err.Error())
		}

		fg := mustFileGroup(&con.SharedConfig)
		err := interpolateMain(con, threads)
		fg.Close()
		if err != nil {
			log.Fatal(err.Error())
		}

	case "Plot":
		wrap := io.DefaultPlotWrapper()
		if err := gcfg.ReadFileInto(wrap, plot); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Plot
		if err := con.CheckInit(); err != nil {
			log.Fatal(err.Error())
		}

		fg := mustFileGroup(&con.SharedConfig)
		err := plotMain(con)
		fg.Close()
		if err != nil {
			log.Fatal(err.Error())
		}

	case "Stats":
		wrap := io.DefaultStatsWrapper()
		if err := gcfg.ReadFileInto(wrap, stats); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Stats
		if err := con.CheckInit(); err != nil {
			log.Fatal(err.Error())
		}

		fg := mustFileGroup(&con.SharedConfig)
		err := statsMain(con)
		fg.Close()
		if err != nil {
			log.Fatal(err.Error())
		}

	case "ExampleConfig":
		text, err := exampleConfigText(exampleConfig)
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Println(text)

	default:
		panic("Impossible")
	}
}

func mustFileGroup(con *io.SharedConfig) *FileGroup {
	fg, err := NewFileGroup(con)
	if err != nil {
		log.Fatal(err.Error())
	}
	return fg
}

// exampleConfigText returns the example config file with the given name.
func exampleConfigText(name string) (string, error) {
	switch name {
	case "Interpolate":
		return io.ExampleInterpolateFile, nil
	case "Plot":
		return io.ExamplePlotFile, nil
	case "Stats":
		return io.ExampleStatsFile, nil
	}
	return "", fmt.Errorf(
		"Unrecognized 'ExampleConfig' argument, '%s'. Only recognized "+
			"arguments are 'Interpolate', 'Plot', and 'Stats'.", name,
	)
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		sort.Strings(setNames)
		return "", fmt.Errorf(
			"The following flags were set: %s, but tricubic "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}
