// Package main provides the CLI entrypoint for name-mapper.
//
// name-mapper runs a declarative mapping job: it loads values, candidates
// and matching configuration from a YAML file, computes the score matrix and
// prints the final assignment.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"name-mapper/internal/config"
)

func main() {
	var (
		jobPath  = flag.String("job", "", "path to the YAML job file (required)")
		logLevel = flag.String("log-level", "info", "log level: trace, debug, info, warn, error")
		logFile  = flag.String("log-file", "", "optional rotating log file")
		debug    = flag.Bool("debug", false, "dump internal state of the result")
	)

	flag.Parse()

	if *jobPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := config.SetupLogger(*logLevel, *logFile)

	job, err := config.LoadFile(*jobPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load job")
	}

	m, err := config.Build(job, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build mapper")
	}

	scores, err := m.ComputeScores(job.Values, job.Candidates, job.Context)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to compute scores")
	}

	// Apply recomputes the scores, but also enforces the job's on_unmapped
	// policy; the matrix above is for display only.
	dm, err := m.Apply(job.Values, job.Candidates, job.Context)
	if err != nil {
		logger.Fatal().Err(err).Msg("mapping failed")
	}

	fmt.Println(scores)
	fmt.Println()

	for _, v := range dm.Left() {
		matches, _ := dm.Matches(v)
		fmt.Printf("%s -> %v\n", v, matches)
	}

	for _, v := range dm.Unmatched() {
		fmt.Printf("%s -> <no match>\n", v)
	}

	if *debug {
		spew.Dump(dm)
	}
}
