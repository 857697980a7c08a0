// Command tsplk solves a symmetric Euclidean TSP instance given as a
// TSPLIB file, per spec.md §6: a single positional argument, exit code 0
// on completion, non-zero on fatal error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/arlenix/tsplk/oracle"
	"github.com/arlenix/tsplk/tsp"
	"github.com/arlenix/tsplk/tsplib"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <tsplib-file>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	path := flag.Arg(0)

	instance, err := tsplib.ParseFile(path)
	if err != nil {
		logger.Fatalf("tsplk: %v", err)
	}

	dist, err := oracle.NewEuclidDistance(instance.Name, instance.Ys, instance.Xs)
	if err != nil {
		logger.Fatalf("tsplk: %v", err)
	}

	opts := tsp.DefaultOptions()
	opts.Debug = true
	opts.LKH.UseNeighborCache = true
	opts.LKH.CacheFilepath = instance.Name + ".cache"

	tour, eval := tsp.Solve(dist, opts)

	fmt.Printf("tour length: %d\n", eval)
	fmt.Println(tour)
}
