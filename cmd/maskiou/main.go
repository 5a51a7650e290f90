// Command maskiou prints the Intersection-over-Union of two masks stored in
// YAML files.
//
// Usage:
//
//	maskiou [-key mask] [-sum] [-log-level info] a.yaml b.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/inercia/go-mask-yaml/pkg/mask"
	"github.com/inercia/go-mask-yaml/pkg/yaml"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "maskiou:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fset := flag.NewFlagSet("maskiou", flag.ContinueOnError)
	key := fset.String("key", "mask", "dotted key of the mask inside each YAML file")
	sum := fset.Bool("sum", false, "divide by |A|+|B| instead of |A ∪ B|")
	levelName := fset.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() != 2 {
		return errors.New("expected exactly two YAML files")
	}

	log := newLogger(*levelName)
	defer func() { _ = log.Sync() }()

	return compute(log, stdout, fset.Arg(0), fset.Arg(1), *key, *sum)
}

func compute(log *zap.Logger, stdout io.Writer, pathA, pathB, key string, sum bool) error {
	a, err := loadMask(log, pathA, key)
	if err != nil {
		return err
	}
	b, err := loadMask(log, pathB, key)
	if err != nil {
		return err
	}

	stats, err := mask.Compare(a, b)
	if err != nil {
		return err
	}
	log.Debug("compared masks",
		zap.Int("overlap", stats.Overlap),
		zap.Int("union", stats.Union),
		zap.Int("sum", stats.Sum))

	var opts []mask.Option
	if sum {
		opts = append(opts, mask.WithSumDenominator())
	}
	iou, err := mask.IoU(a, b, opts...)
	if err != nil {
		return err
	}

	log.Info("computed IoU", zap.Float64("iou", iou), zap.Bool("sumDenominator", sum))
	_, err = fmt.Fprintf(stdout, "%g\n", iou)
	return err
}

func loadMask(log *zap.Logger, path, key string) (mask.Mask, error) {
	doc, err := yaml.LoadYAML(path)
	if err != nil {
		return mask.Mask{}, err
	}
	m, err := mask.FromDocument(doc, key)
	if err != nil {
		return mask.Mask{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("loaded mask",
		zap.String("path", path),
		zap.Ints("shape", m.Shape()),
		zap.Int("true", m.Count()))
	return m, nil
}
