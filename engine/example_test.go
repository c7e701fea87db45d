package engine_test

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-slew/engine"
	"github.com/cwbudde/algo-slew/param"
)

func ExampleEngine() {
	set := param.NewSet(param.WithFeatures(param.AllFeatures()))
	set.Param(param.HQ).SetValue(1)

	e, err := engine.New(set, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		panic(err)
	}
	if err := e.Prepare(48000, 512); err != nil {
		panic(err)
	}

	buf := [][]float32{make([]float32, 512), make([]float32, 512)}
	e.ProcessFloat32(buf, nil)
	fmt.Println(e.State(), e.LatencySamples(), e.SampleRateUp())

	// Output: prepared 16 96000
}
